package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campsite/pkg/config"
	"campsite/pkg/contracts"
	"campsite/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Application owns the HTTP server lifecycle: middleware wiring, serving,
// and graceful shutdown of the server and its background workers.
type Application struct {
	cfg         *config.Config
	server      *http.Server
	rateLimiter *middleware.ClientRateLimiter
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp wires the handlers. Health endpoints get only recovery and logging;
// application endpoints get the full chain.
func (a *Application) SetApp(appHandler, healthHandler contracts.Handler) {
	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTP http.Handler = healthRouter
	healthHTTP = middleware.RequestLogging(a.cfg.Log)(healthHTTP)
	healthHTTP = middleware.Recovery(a.cfg.Log)(healthHTTP)

	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.cfg.Log,
	)

	var appHTTP http.Handler = appRouter
	appHTTP = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHTTP)
	appHTTP = middleware.ClientRateLimit(a.rateLimiter)(appHTTP)
	appHTTP = middleware.ContentTypeValidation(a.cfg.Log)(appHTTP)
	appHTTP = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHTTP)
	appHTTP = middleware.RequestLogging(a.cfg.Log)(appHTTP)
	appHTTP = middleware.Recovery(a.cfg.Log)(appHTTP)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHTTP)
	mux.Handle("/ready", healthHTTP)
	mux.Handle("/", appHTTP)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Run serves until the process receives SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown")
	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
