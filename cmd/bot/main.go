package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/classify/gemini"
	"avalanche-analyzer/internal/classify/openai"
	"avalanche-analyzer/internal/config"
	"avalanche-analyzer/internal/telegram"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}
	if cfg.OpenAIAPIKey == "" && cfg.GeminiAPIKey == "" {
		log.Fatal("need OPENAI_API_KEY or GEMINI_API_KEY")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	engines := &classify.Engines{}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	router := &telegram.Router{
		Bot:     bot,
		Engines: engines,
		Timeout: cfg.RequestTimeout,
		Log:     log,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	log.Infof("avalanche bot running as @%s", bot.Self.UserName)
	for upd := range updates {
		router.HandleUpdate(upd)
	}
}
