package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bannerH "github.com/fekuna/kitmed-catalog-service/internal/banner/handler"
	catH "github.com/fekuna/kitmed-catalog-service/internal/category/handler"
	importH "github.com/fekuna/kitmed-catalog-service/internal/importer/handler"
	mediaH "github.com/fekuna/kitmed-catalog-service/internal/media/handler"
	partnerH "github.com/fekuna/kitmed-catalog-service/internal/partner/handler"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/broker"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	prodH "github.com/fekuna/kitmed-catalog-service/internal/product/handler"
	rfpH "github.com/fekuna/kitmed-catalog-service/internal/rfp/handler"
	rfpListenerPkg "github.com/fekuna/kitmed-catalog-service/internal/rfp/listener"
	"github.com/fekuna/kitmed-catalog-service/internal/server"
	userH "github.com/fekuna/kitmed-catalog-service/internal/user/handler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the gRPC health service and the RFP listener",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	if migrateOnStart {
		applied, err := postgres.Migrate(ctx, a.db)
		if err != nil {
			return err
		}
		appLogger.Info("Migrations applied", zap.Strings("versions", applied))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Handlers
	handlers := &server.Handlers{
		Category: catH.NewCategoryHandler(a.categories, appLogger),
		Product:  prodH.NewProductHandler(a.products, appLogger),
		Partner:  partnerH.NewPartnerHandler(a.partners, appLogger),
		Banner:   bannerH.NewBannerHandler(a.banners, appLogger),
		RFP:      rfpH.NewRFPHandler(a.rfps, appLogger),
		User:     userH.NewUserHandler(a.users, appLogger),
		Media:    mediaH.NewMediaHandler(a.media, appLogger),
		Import:   importH.NewImportHandler(a.importer, appLogger),
	}

	checks := map[string]server.HealthCheck{
		"postgres": a.db.PingContext,
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Client.Ping(ctx).Err() }
	}

	router := server.NewRouter(handlers, server.Options{
		Tokens:      a.tokens,
		Users:       a.accounts,
		Translator:  a.translator,
		CORSOrigins: cfg.Server.CORSOrigins,
		UploadDir:   cfg.Storage.UploadDir,
		Checks:      checks,
	}, appLogger)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer := server.NewGRPCServer(appLogger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Server.GRPCPort != "" {
		g.Go(func() error {
			return grpcServer.ListenAndServe(cfg.Server.GRPCPort)
		})
	}

	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.RFPTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.RFPTopic))

		listener := rfpListenerPkg.NewRFPListener(consumer, a.rfps, appLogger)
		g.Go(func() error {
			return listener.Start(gctx)
		})
	}

	grpcServer.SetServing(true)

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		grpcServer.SetServing(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		grpcServer.Stop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
