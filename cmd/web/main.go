package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"tablebite.com/app/internal/config"
	apphttp "tablebite.com/app/internal/http"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/modules/verify"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	api := storeapi.New(cfg.APIURL, cfg.APITimeout, cfg.StoreCacheTTL)

	var verifier verify.Verifier = verify.Disabled{}
	if cfg.RecaptchaSecret != "" {
		verifier = verify.NewRecaptcha(cfg.RecaptchaSecret, cfg.RecaptchaEndpoint)
	} else {
		logger.Warn("RECAPTCHA_SECRET not set, bot verification disabled")
	}

	r := apphttp.NewRouter(logger, cfg, api, verifier)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
