// Command console is the terminal front end of the ddg admin console: it
// signs administrators in against the backend, keeps the session on disk,
// and exposes the user, role, event, department, and assignment screens as
// subcommands. All authorization decisions live in the internal packages;
// this binary only renders them.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ddg-console/internal/api"
	"ddg-console/internal/auth"
	"ddg-console/internal/config"
	"ddg-console/internal/session"
	"ddg-console/internal/telemetry"
	"ddg-console/internal/telemetry/loki"
	consoleotel "ddg-console/internal/telemetry/otel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	providers, err := consoleotel.NewProviders(ctx, cfg.OTLPEndpoint, "ddg-console", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry: shutdown: %v", err)
		}
	}()

	emitters := telemetry.Multi{consoleotel.NewEventEmitter(providers.LoggerProvider)}
	if cfg.LokiURL != "" {
		emitters = append(emitters, loki.NewEmitter(cfg.LokiURL))
	}

	store := session.NewStore(cfg.SessionFile)
	nav := &printNavigator{}
	client := api.NewClient(cfg.APIURL, cfg.Timeout(), store, nav, emitters, providers.TracerProvider)

	a := &app{
		store:       store,
		nav:         nav,
		gateway:     auth.NewGateway(api.NewAuthClient(client), store, nav, emitters),
		auth:        api.NewAuthClient(client),
		roles:       api.NewRolesClient(client),
		events:      api.NewEventsClient(client),
		departments: api.NewDepartmentsClient(client),
		assignments: api.NewAssignmentsClient(client),
	}

	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
