package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/GoArmGo/EmployeeApp/internal/handler"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"github.com/GoArmGo/EmployeeApp/internal/usecase"
	"github.com/GoArmGo/EmployeeApp/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// routerDeps — всё, что нужно для сборки HTTP-маршрутов.
type routerDeps struct {
	employeeUseCase usecase.EmployeeUseCase
	db              handler.DBPinger
	schema          handler.SchemaReadiness
	gatherer        prometheus.Gatherer
	metrics         *metrics.Metrics
	web             *web.Handler
	logger          *slog.Logger
}

func newRouter(deps routerDeps) http.Handler {
	employeeHandler := handler.NewEmployeeHandler(deps.employeeUseCase, deps.logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(handler.RequestLogger(deps.logger))
	r.Use(handler.Instrument(deps.metrics))

	r.Mount("/api/employees", employeeHandler.Routes())

	r.Method(http.MethodGet, "/healthz", handler.NewHealthChecker(deps.db, deps.schema, deps.logger))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}))

	r.Get("/", deps.web.Index)
	r.Method(http.MethodGet, "/static/*", deps.web.Static())

	return r
}

// runServer запускает HTTP сервер и, параллельно, создание схемы бд.
// Сервер начинает принимать запросы сразу, не дожидаясь схемы.
func (a *App) runServer(ctx context.Context) error {
	webHandler, err := web.NewHandler(web.DefaultAPIURL, a.logger)
	if err != nil {
		return err
	}

	router := newRouter(routerDeps{
		employeeUseCase: a.employeeUseCase,
		db:              a.dbClient,
		schema:          a.dbClient,
		gatherer:        a.registry,
		metrics:         a.metrics,
		web:             webHandler,
		logger:          a.logger,
	})

	server := &http.Server{
		Addr:    net.JoinHostPort("", a.Config.ServerPort),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.dbClient.Bootstrap(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		a.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
