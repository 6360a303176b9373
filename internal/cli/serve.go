package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/listingadmin/listing_admin/internal/config"
	"github.com/listingadmin/listing_admin/internal/handler"
	"github.com/listingadmin/listing_admin/internal/middleware"
	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/sse"
	"github.com/listingadmin/listing_admin/internal/web"
	"github.com/listingadmin/listing_admin/internal/worker"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load config
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// 2. Setup logger
		setupLogger(cfg.Env)
		log.Info().Str("env", cfg.Env).Str("api_base_url", cfg.Backend.BaseURL).Msg("starting listing admin")

		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// app is the wired dashboard.
type app struct {
	router  *gin.Engine
	backend *service.BackendService
}

// newApp wires the catalog client, services, handlers and router.
func newApp(cfg *config.Config) (*app, error) {
	// 3. Initialize catalog client
	client := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Backend.BaseURL,
		Debug:   !cfg.IsProduction(),
	})

	// 4. Initialize live updates
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 5. Initialize services
	categorySvc := service.NewCategoryService(client, notifier)
	productSvc := service.NewProductService(client, notifier)
	editSvc := service.NewProductEditService(client, notifier, cfg.Backend.PublicBaseURL)
	backendSvc := service.NewBackendService(client, cfg.Backend.BaseURL)

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Page:        handler.NewPageHandler(),
		Category:    handler.NewCategoryHandler(categorySvc),
		Product:     handler.NewProductHandler(productSvc),
		ProductEdit: handler.NewProductEditHandler(editSvc),
		Health:      handler.NewHealthHandler(backendSvc),
		SSE:         handler.NewSSEHandler(hub),
	}

	renderer, err := web.NewRenderer(cfg.Backend.BaseURL)
	if err != nil {
		return nil, err
	}

	// 7. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.HTMLRender = renderer
	handler.RegisterRoutes(router, handlers)

	return &app{router: router, backend: backendSvc}, nil
}

// newHTTPServer returns a server whose request contexts derive from ctx, so
// cancelling ctx ends open event streams before Shutdown waits on them.
func newHTTPServer(ctx context.Context, port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:        ":" + port,
		Handler:     h,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// 9. Start workers
	go worker.NewProbeWorker(a.backend, cfg.Worker.ProbeInterval).Start(ctx)

	// 10. Start HTTP server
	srv := newHTTPServer(ctx, cfg.Port, a.router)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
	case <-parent.Done():
	}

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers and open event streams
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
	return nil
}
