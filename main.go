package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathakanu/medibot/internal/config"
	"github.com/pathakanu/medibot/internal/database"
	"github.com/pathakanu/medibot/internal/notify"
	myopenai "github.com/pathakanu/medibot/internal/openai"
	"github.com/pathakanu/medibot/internal/server"
	"github.com/pathakanu/medibot/internal/service"
)

func main() {
	logger := log.New(os.Stdout, "[medibot] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalf("create upload dir: %v", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	reminders := service.NewReminders(db)
	notes := service.NewNotes(db)
	water := service.NewWater(db)

	aiClient := myopenai.New(cfg.OpenAIAPIKey)
	if !aiClient.Configured() {
		logger.Printf("OPENAI_API_KEY not set, chat and summaries will degrade")
	}

	var sender notify.Sender
	if cfg.DigestEnabled() {
		sender = notify.NewWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
		logger.Printf("reminder digest enabled for %s (%s)", cfg.DigestRecipient, cfg.DigestSchedule)
	}
	scheduler := notify.NewScheduler(cfg, reminders, sender, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	srv := server.New(cfg, logger, reminders, notes, water, aiClient, aiClient)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(httpServer, scheduler, logger)
}

func waitForShutdown(server *http.Server, scheduler *notify.Scheduler, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	scheduler.Stop()
}
