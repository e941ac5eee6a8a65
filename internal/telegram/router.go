// Package telegram is the chat front-end: it accepts terrain photos, drives
// the classification session, and renders the verdict as a reply.
package telegram

import (
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"avalanche-analyzer/internal/classify"
)

type Router struct {
	Bot     *tgbotapi.BotAPI
	Engines *classify.Engines
	Timeout time.Duration
	Log     *zap.SugaredLogger

	chatEngine sync.Map // chatID -> engine name ("gpt"|"gemini")
	sessions   sync.Map // chatID -> *chatSession
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(cid, upd.Message)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if strings.TrimSpace(upd.Message.Text) != "" {
		r.send(cid, "Send a photo of mountain terrain and I will assess the avalanche hazard.")
	}
}

func (r *Router) handleCommand(cid int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(cid, "Send a photo of mountain terrain — I will classify the avalanche hazard "+
			"(powder, loose snow, slab, or none) and cross-check the model's answer against "+
			"the visual evidence.\nCommands: /engine, /health")
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		arg := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(msg.Text, "/engine")))
		switch arg {
		case "":
			r.send(cid, "Current engine: "+r.engineName(cid)+"\nUsage:\n/engine gpt\n/engine gemini")
		case "gpt", "openai":
			r.chatEngine.Store(cid, "gpt")
			r.send(cid, "OK, switching to: gpt")
		case "gemini":
			r.chatEngine.Store(cid, "gemini")
			r.send(cid, "OK, switching to: gemini")
		default:
			r.send(cid, "Unknown engine. Available: gpt | gemini")
		}
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) engineName(cid int64) string {
	if v, ok := r.chatEngine.Load(cid); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return "gpt"
}

func (r *Router) send(cid int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(cid, text))
}
