package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quizgen-platform/internal/ai"
	"quizgen-platform/internal/config"
	"quizgen-platform/internal/logger"
	"quizgen-platform/services"
)

func main() {
	limit := flag.Int64("limit", 10, "number of recent assessment results to process")
	count := flag.Int("count", 5, "questions to generate per result")
	questionType := flag.String("type", "MCQ", "question type: MCQ, TRUE_FALSE or FILL_BLANK")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	qt, err := services.ParseQuestionType(*questionType)
	if err != nil {
		log.Fatal("Invalid question type:", err)
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

	llm, err := ai.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to initialize LLM client:", err)
	}
	defer llm.Close()

	agent := services.NewAgent(llm)
	generator := services.NewAssignmentGenerator(mongoClient.Database(cfg.DBName), agent)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	stored, err := generator.Run(ctx, *limit, *count, qt)
	if err != nil {
		log.Fatal("Assignment generation failed:", err)
	}

	log.Printf("Stored generated question sets for %d assessment results", stored)
}
