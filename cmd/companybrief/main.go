package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"CompanyBrief/internal/app"
	"CompanyBrief/internal/config"
	"CompanyBrief/internal/logging"
)

func main() {
	company := flag.String("company", "", "company to research (required)")
	industry := flag.String("industry", "", "industry the company operates in")
	hqLocation := flag.String("hq", "", "headquarters location")
	jobID := flag.String("job-id", "", "job identifier for the status channel (generated when empty)")
	datasets := flag.String("datasets", "", "path to a curated dataset JSON file (overrides config)")
	flag.Parse()

	if *company == "" {
		fmt.Fprintln(os.Stderr, "usage: companybrief -company <name> [-industry <name>] [-hq <location>] [-job-id <id>] [-datasets <file>]")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := config.Load()
	if *datasets != "" {
		cfg.Datasets.File = *datasets
	}
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	state := application.Run(ctx, *company, *industry, *hqLocation, *jobID)

	for _, msg := range state.Messages {
		logger.Info(msg)
	}

	if state.Report == "" {
		logger.Error("pipeline finished without a report", "job_id", state.JobID)
		os.Exit(1)
	}

	fmt.Println(state.Report)
}
