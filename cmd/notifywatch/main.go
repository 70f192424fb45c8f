package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cusceda/pkg/config"
	"cusceda/pkg/logger"
	"cusceda/pkg/notifyclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	var (
		baseURL  string
		token    string
		interval time.Duration
	)
	flag.StringVar(&baseURL, "url", cfg.NotificationServiceURL, "Notification service base URL")
	flag.StringVar(&token, "token", os.Getenv("NOTIFY_TOKEN"), "Admin JWT (defaults to $NOTIFY_TOKEN)")
	flag.DurationVar(&interval, "interval", cfg.NotificationPollInterval, "Poll interval")
	flag.Parse()

	log := logger.New()
	if token == "" {
		log.Error("An admin token is required (-token or NOTIFY_TOKEN)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := notifyclient.New(baseURL, token)

	var poller *notifyclient.Poller
	poller = notifyclient.NewPoller(client, interval, func(message string) {
		log.Info("%s (%d unread)", message, poller.Unread())
	}, log)

	log.Info("Watching %s every %s", baseURL, interval)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Poller stopped: %v", err)
		os.Exit(1)
	}

	log.Info("Stopped with %d unread notification(s)", poller.Unread())
}
