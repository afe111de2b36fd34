package services

import (
	"context"
	"time"

	"quizgen-platform/internal/config"
	"quizgen-platform/internal/logger"

	"github.com/go-co-op/gocron"
)

// CronService periodically pushes latest-assessment reports to the
// configured endpoint.
type CronService struct {
	scheduler *gocron.Scheduler
	sender    *ReportSender
	cronExpr  string
}

// NewCronService creates the recurring report job from configuration.
func NewCronService(cfg *config.Config, sender *ReportSender) *CronService {
	return &CronService{
		scheduler: gocron.NewScheduler(time.UTC),
		sender:    sender,
		cronExpr:  cfg.ReportCron,
	}
}

// Start schedules the report job and runs the scheduler in the background.
func (c *CronService) Start() error {
	_, err := c.scheduler.Cron(c.cronExpr).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := c.sender.SendAll(ctx)
		if err != nil {
			logger.Error("report cron run failed", "error", err)
			return
		}
		logger.Info("report cron run complete", "sent", sent)
	})
	if err != nil {
		return err
	}

	c.scheduler.StartAsync()
	logger.Info("report cron started", "schedule", c.cronExpr)
	return nil
}

// Stop halts the scheduler.
func (c *CronService) Stop() {
	c.scheduler.Stop()
}
