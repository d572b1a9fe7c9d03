package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	adapthttp "github.com/371bohdan/Record-Play/internal/adapter/http"
	"github.com/371bohdan/Record-Play/internal/adapter/postgres"
	"github.com/371bohdan/Record-Play/internal/app"
)

func main() {
	addr := env("ADDR", ":8080")

	if err := requiredEnv("DATABASE_URL", "TEST_DATABASE_URL"); err != nil {
		log.Fatal(err)
	}
	connStr := os.Getenv("DATABASE_URL")

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	authSvc := app.NewAuthService(db, sessionRepo)
	resetSvc := app.NewResetService(db)
	waterSvc := app.NewWaterService(db)

	oidcConfig, err := adapthttp.LoadOIDC(context.Background(),
		os.Getenv("OIDC_ISSUER"),
		os.Getenv("OIDC_CLIENT_ID"),
		os.Getenv("OIDC_CLIENT_SECRET"),
		os.Getenv("OIDC_REDIRECT_URL"))
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(authSvc, resetSvc, waterSvc, oidcConfig).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requiredEnv reports the first of keys that is unset or empty.
func requiredEnv(keys ...string) error {
	for _, k := range keys {
		if os.Getenv(k) == "" {
			return fmt.Errorf("%s is required", k)
		}
	}
	return nil
}
