package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"schoolbooks/internal/api"
	"schoolbooks/internal/config"
	"schoolbooks/internal/events"
	"schoolbooks/internal/http/handlers"
	"schoolbooks/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, repos.Seed{Email: cfg.AdminEmail, Name: "Admin", Password: cfg.AdminPassword})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Backend client
	var authz api.Authorizer = api.BearerToken(cfg.APIToken)
	if cfg.APIJWTSecret != "" {
		authz = &api.JWTSigner{Secret: []byte(cfg.APIJWTSecret), Issuer: "schoolbooks-web", TTL: 5 * time.Minute}
	}
	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithAuthorizer(authz),
		api.WithRateLimit(cfg.APIRPS),
		api.WithRetries(cfg.APIRetries, time.Second),
		api.WithMetrics(api.NewMetrics(prometheus.DefaultRegisterer)),
	)

	pub := events.New(cfg.KafkaBrokers, cfg.ContactTopic)
	defer pub.Close()
	if pub.Enabled() {
		log.Printf("[events] publishing contact messages to %s via %s", cfg.ContactTopic, cfg.KafkaBrokers)
	}

	engine := handlers.NewEngine(cfg.TemplatesDir)
	engine.Reload(true)
	log.Printf("[static] /static -> %s", cfg.StaticDir)

	app := handlers.NewApp(cfg, engine, handlers.NewDeps(client, db, cfg, pub))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[server] %v", err)
	}
}
