package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/inamhi-tic/helpdesk-service/internal/auth"
	"github.com/inamhi-tic/helpdesk-service/internal/config"
	"github.com/inamhi-tic/helpdesk-service/internal/database"
	"github.com/inamhi-tic/helpdesk-service/internal/handler"
	"github.com/inamhi-tic/helpdesk-service/internal/router"
	"github.com/inamhi-tic/helpdesk-service/internal/service"
)

// API owns the HTTP server for the api mode.
type API struct {
	cfg     *config.Config
	httpSrv *http.Server
}

// NewAPI validates config, migrates, connects and wires the handler graph.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	ticketHandler := handler.NewTicketHandler(service.NewTicketService(db))
	userHandler := handler.NewUserHandler(service.NewUserService(db), tokens)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(ticketHandler, userHandler, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	slog.Info("HTTP server listening", "addr", a.httpSrv.Addr)
	slog.Info("endpoints",
		"swagger", base+"/swagger",
		"health", base+"/health",
		"api", base+"/api/v1/")

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
