package telegram

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/session"
)

const pollEvery = 500 * time.Millisecond

type chatSession struct {
	sess   *session.Session
	engine string
}

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID

	// Existing pending request wins; the session enforces single flight.
	if v, ok := r.sessions.Load(cid); ok {
		if st, _ := v.(*chatSession).sess.Poll(); st == session.StatePending {
			r.send(cid, "Still analyzing the previous photo — send this one again when I reply.")
			return
		}
	}

	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.send(cid, "Could not fetch the photo: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	img, err := download(url)
	if err != nil {
		r.send(cid, "Could not download the photo: "+err.Error())
		return
	}

	name := r.engineName(cid)
	eng, err := r.Engines.Get(name)
	if err != nil {
		r.send(cid, "Engine unavailable: "+err.Error())
		return
	}

	cs := &chatSession{sess: session.New(classify.New(eng), r.Timeout), engine: name}
	r.sessions.Store(cid, cs)

	if err := cs.sess.Submit(img); err != nil {
		if errors.Is(err, session.ErrRequestInFlight) {
			r.send(cid, "Still analyzing the previous photo.")
			return
		}
		r.send(cid, "Could not start the analysis: "+err.Error())
		return
	}

	r.send(cid, "Analyzing terrain features…")
	go r.awaitOutcome(cid, cs)
}

// awaitOutcome is the session's single consumer: it polls until the one
// terminal outcome arrives, then renders it.
func (r *Router) awaitOutcome(cid int64, cs *chatSession) {
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for range ticker.C {
		st, out := cs.sess.Poll()
		if st != session.StateResolved {
			continue
		}
		if out.Err != nil {
			r.Log.Infow("classification rejected", "chat", cid, "engine", cs.engine, "err", out.Err)
			r.send(cid, "⚠️ "+out.Err.Error())
			return
		}
		r.Log.Infow("classification accepted",
			"chat", cid,
			"engine", cs.engine,
			"type", out.Analysis.AvalancheType,
			"confidence", out.Analysis.ConfidenceLevel)
		r.send(cid, FormatAnalysis(out.Analysis))
		return
	}
}

func download(url string) ([]byte, error) {
	httpc := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}
