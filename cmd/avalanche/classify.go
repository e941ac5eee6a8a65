package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/classify/gemini"
	"avalanche-analyzer/internal/classify/openai"
	"avalanche-analyzer/internal/config"
	"avalanche-analyzer/internal/schema"
	"avalanche-analyzer/internal/session"
)

// NewClassifyCmd creates the classify subcommand.
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify the avalanche hazard in a terrain photo",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}
	cmd.Flags().String("engine", "gpt", "Vision engine to use (gpt or gemini)")
	cmd.Flags().String("api-key", "", "API key (defaults to OPENAI_API_KEY / GEMINI_API_KEY)")
	cmd.Flags().Int("timeout", 180, "Request timeout in seconds")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	img, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	engineName, _ := cmd.Flags().GetString("engine")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	cfg := config.Load()
	var eng classify.Engine
	switch engineName {
	case "gpt", "openai":
		key := apiKey
		if key == "" {
			key = cfg.OpenAIAPIKey
		}
		if key == "" {
			return fmt.Errorf("no API key: pass --api-key or set OPENAI_API_KEY")
		}
		eng = openai.New(key, cfg.OpenAIModel)
	case "gemini":
		key := apiKey
		if key == "" {
			key = cfg.GeminiAPIKey
		}
		if key == "" {
			return fmt.Errorf("no API key: pass --api-key or set GEMINI_API_KEY")
		}
		eng = gemini.New(key, cfg.GeminiModel)
	default:
		return fmt.Errorf("unknown engine %q; use gpt or gemini", engineName)
	}

	sess := session.New(classify.New(eng), time.Duration(timeoutSec)*time.Second)
	if err := sess.Submit(img); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), "Analyzing terrain features")
	for {
		st, out := sess.Poll()
		if st == session.StateResolved {
			fmt.Fprintln(cmd.OutOrStdout())
			if out.Err != nil {
				return out.Err
			}
			printAnalysis(cmd, out.Analysis)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), ".")
		time.Sleep(250 * time.Millisecond)
	}
}

func printAnalysis(cmd *cobra.Command, a *schema.AvalancheAnalysis) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n%s\n", a.AvalancheType.DisplayName())
	fmt.Fprintf(w, "Confidence: %.0f%%\n", a.ConfidenceLevel)

	c := a.Characteristics
	fmt.Fprintf(w, "Snow density: %s\n", c.SnowTexture.Density)
	fmt.Fprintf(w, "Release: %s, propagation: %s\n", c.Movement.StartingWidth, c.Movement.Propagation)
	if c.Terrain.SlopeAngle != nil {
		fmt.Fprintf(w, "Slope: %s\n", *c.Terrain.SlopeAngle)
	}
	if c.FractureLine {
		fmt.Fprintln(w, "Fracture line visible")
	}
	if len(a.TerrainNotes) > 0 {
		fmt.Fprintln(w, "\nObservations:")
		for _, note := range a.TerrainNotes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}
}
