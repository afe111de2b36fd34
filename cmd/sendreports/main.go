package main

import (
	"context"
	"log"
	"time"

	"quizgen-platform/internal/config"
	"quizgen-platform/internal/logger"
	"quizgen-platform/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	if cfg.ReportAPIURL == "" {
		log.Fatal("REPORT_API_URL is not set")
	}

	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	sender := services.NewReportSender(mongoClient.Database(cfg.DBName), cfg.ReportAPIURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := sender.SendAll(ctx)
	if err != nil {
		log.Fatal("Report delivery failed:", err)
	}

	log.Printf("Sent %d reports", sent)
}
