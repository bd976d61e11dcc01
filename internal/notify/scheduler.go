package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pathakanu/medibot/internal/config"
	"github.com/pathakanu/medibot/internal/model"
	"github.com/pathakanu/medibot/internal/service"
	"github.com/robfig/cron/v3"
)

// uploadMaxAge is how long uploaded images are kept before the sweep
// removes them.
const uploadMaxAge = 24 * time.Hour

// Sender is the outbound message channel used for the digest.
type Sender interface {
	Send(to, body string) error
}

// Scheduler runs the morning reminder digest and the upload-directory sweep.
type Scheduler struct {
	cfg       *config.Config
	reminders *service.Reminders
	sender    Sender
	cron      *cron.Cron
	logger    *log.Logger
}

// NewScheduler creates the scheduler. sender may be nil when the digest is
// not configured; only housekeeping jobs run in that case.
func NewScheduler(cfg *config.Config, reminders *service.Reminders, sender Sender, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		reminders: reminders,
		sender:    sender,
		cron:      cron.New(cron.WithLocation(cfg.LocalTimezone)),
		logger:    logger,
	}
}

// Start registers the cron jobs and starts the scheduler loop.
func (s *Scheduler) Start() error {
	if s.sender != nil {
		if _, err := s.cron.AddFunc(s.cfg.DigestSchedule, s.sendDigest); err != nil {
			return fmt.Errorf("register digest job: %w", err)
		}
	}
	if _, err := s.cron.AddFunc("@hourly", s.sweepUploads); err != nil {
		return fmt.Errorf("register upload sweep: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sendDigest sends the configured recipient their pending reminders.
func (s *Scheduler) sendDigest() {
	reminders, err := s.reminders.Pending(s.cfg.DigestRecipient)
	if err != nil {
		s.logger.Printf("digest: fetch reminders: %v", err)
		return
	}
	if len(reminders) == 0 {
		return
	}

	if err := s.sender.Send(s.cfg.DigestRecipient, FormatDigest(reminders)); err != nil {
		s.logger.Printf("digest: send: %v", err)
	}
}

// FormatDigest renders pending reminders as a WhatsApp message body.
func FormatDigest(reminders []model.Reminder) string {
	var sb strings.Builder
	sb.WriteString("Good morning! Your reminders for today:\n")
	for i, r := range reminders {
		sb.WriteString(fmt.Sprintf("%d. %s at %s\n", i+1, r.Name, r.Time))
	}
	return sb.String()
}

// sweepUploads removes uploaded images older than uploadMaxAge.
func (s *Scheduler) sweepUploads() {
	entries, err := os.ReadDir(s.cfg.UploadDir)
	if err != nil {
		s.logger.Printf("sweep: read %s: %v", s.cfg.UploadDir, err)
		return
	}

	cutoff := time.Now().Add(-uploadMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.cfg.UploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Printf("sweep: remove %s: %v", path, err)
		}
	}
}
