package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/urizennnn/geocommit-scanner/cache"
	"github.com/urizennnn/geocommit-scanner/config"
	"github.com/urizennnn/geocommit-scanner/export"
	"github.com/urizennnn/geocommit-scanner/fetch"
	"github.com/urizennnn/geocommit-scanner/github"
	"github.com/urizennnn/geocommit-scanner/logger"
	"github.com/urizennnn/geocommit-scanner/ratelimit"
)

func main() {
	cfg, err := config.NewLoader("APP").Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profiles, err := cache.New[*github.Profile](cfg.CacheSize)
	if err != nil {
		log.Fatalf("cache error: %v", err)
	}

	limiter := ratelimit.New(cfg.GithubRateLimit)
	client := fetch.New(limiter, cfg.HTTPTimeout, cfg.RetryCooldown)
	resolver := github.NewResolver(client, profiles, cfg.GithubToken, cfg.Locations)
	worker := github.NewWorker(client, resolver, cfg.GithubToken, cfg.PerPage)
	scanner := github.NewScanner(worker)

	logrus.Infof("start workers for %d repos", len(cfg.Repos))
	results, err := scanner.Run(ctx, cfg.Repos)
	if err != nil {
		if ctx.Err() != nil {
			logrus.Info("scan interrupted, nothing exported")
			return
		}
		logrus.Fatalf("scan failed: %v", err)
	}
	logrus.Info("all workers finished, processing results")

	writer := export.New(profiles, cfg.OutputDir, cfg.ExportFormat)
	for _, res := range results {
		path, err := writer.Write(res)
		if err != nil {
			logrus.Fatalf("export %s: %v", res.Repo, err)
		}
		logrus.WithField("file", path).Info("report written")
	}
}
