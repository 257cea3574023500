package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cetakin/printd/internal/api/handlers"
	"github.com/cetakin/printd/internal/api/middleware"
	"github.com/cetakin/printd/internal/config"
	"github.com/cetakin/printd/internal/delivery"
	"github.com/cetakin/printd/internal/discovery"
	"github.com/cetakin/printd/internal/escpos"
	"github.com/cetakin/printd/internal/history"
	"github.com/cetakin/printd/internal/pipeline"
	"github.com/cetakin/printd/internal/registry"
	"github.com/cetakin/printd/internal/webhook"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[printd] failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[printd] invalid configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("[printd] failed to create data directory: %v", err)
	}

	store, err := history.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("[printd] failed to open history store: %v", err)
	}
	defer store.Close()

	pruner := history.NewPruner(store, cfg.Database.RetentionDays)
	pruner.Start()
	defer pruner.Stop()

	sender := webhook.NewSender(webhook.Config{
		URL:         cfg.Webhook.URL,
		Secret:      cfg.Webhook.Secret,
		Timeout:     cfg.Webhook.Timeout,
		WorkerCount: cfg.Webhook.WorkerCount,
		QueueSize:   cfg.Webhook.QueueSize,
	})
	sender.Start()
	defer sender.Stop()

	reg := registry.New()
	disc := discovery.New(reg)
	encoder := escpos.NewEncoder(reg)

	// Channel order is fixed: each job tries the direct device first and
	// the browser render last.
	channels := []delivery.Channel{
		delivery.NewUSBChannel(disc, cfg.Printing.ChunkSize, cfg.Printing.SettleDelay),
		delivery.NewBridgeChannel(cfg.Bridge.URL, cfg.Bridge.Timeout),
		delivery.NewSpoolerChannel(cfg.Spooler.Binary),
		delivery.NewRenderChannel(cfg.Render.OutputDir, cfg.Render.Timeout, cfg.Render.NoSandbox),
	}

	printer := pipeline.NewPrinter(encoder, channels, cfg.Printing.ChannelTimeout, store, sender)

	auth := middleware.NewAuthMiddleware(cfg.Auth.PasswordHash, cfg.Auth.JWTSecret)
	engine := buildRouter(printer, reg, disc, store, auth)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("[printd] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[printd] server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[printd] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[printd] forced shutdown: %v", err)
	}

	log.Println("[printd] stopped")
}

func buildRouter(printer *pipeline.Printer, reg *registry.Registry, disc *discovery.Discovery, store *history.Store, auth *middleware.AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	printHandler := handlers.NewPrintHandler(printer)
	registryHandler := handlers.NewRegistryHandler(reg, disc)
	historyHandler := handlers.NewHistoryHandler(store)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "busy": printer.Busy()})
	})

	engine.POST("/api/auth/login", auth.LoginHandler)
	engine.POST("/api/auth/logout", auth.LogoutHandler)
	engine.GET("/api/auth/status", auth.StatusHandler)

	api := engine.Group("/api", auth.RequireAuth())
	{
		api.POST("/print", printHandler.SubmitPrint)
		api.POST("/print/preview", printHandler.PreviewPrint)

		api.GET("/profiles", registryHandler.ListProfiles)
		api.GET("/profiles/printers", registryHandler.ListPrinters)
		api.GET("/profiles/papers", registryHandler.ListPapers)
		api.GET("/profiles/fonts", registryHandler.ListFonts)
		api.GET("/profiles/densities", registryHandler.ListDensities)

		api.GET("/discovery", registryHandler.TestConnection)

		api.GET("/history", historyHandler.ListAttempts)
		api.GET("/history/jobs/:id", historyHandler.GetJobAttempts)
	}

	return engine
}
