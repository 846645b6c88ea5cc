package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/srv"
)

var (
	flagListenAddr   = flag.String("listen", ":8000", "address to listen on")
	flagDBPath       = flag.String("db", "qrgen.sqlite3", "path to the SQLite database")
	flagAdminPass    = flag.String("admin-password", "", "admin console password (or ADMIN_PASSWORD env var)")
	flagStripeSecret = flag.String("stripe-webhook-secret", "", "Stripe webhook signing secret (or STRIPE_WEBHOOK_SECRET env var)")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	godotenv.Load()
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = log.With().Str("service", "qrgen").Logger()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	adminPass := *flagAdminPass
	if adminPass == "" {
		adminPass = os.Getenv("ADMIN_PASSWORD")
	}
	stripeSecret := *flagStripeSecret
	if stripeSecret == "" {
		stripeSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	}

	server, err := srv.New(*flagDBPath, hostname, adminPass, stripeSecret)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return server.Serve(*flagListenAddr)
}
