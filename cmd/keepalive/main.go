// keepalive pings a deployed lunchbox instance so a free-tier host doesn't
// put it to sleep between lunch runs. Run once from cron, or with -interval
// to loop in the foreground.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lunchroom/lunchbox/pkg/logger"
)

func main() {
	var (
		target   = flag.String("url", "http://localhost:8080/health", "URL to ping")
		interval = flag.Duration("interval", 0, "ping repeatedly at this interval (0 = once)")
		timeout  = flag.Duration("timeout", 20*time.Second, "per-request timeout")
		level    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log := logger.New(*level)
	slog.SetDefault(log)

	client := &http.Client{Timeout: *timeout}

	if *interval <= 0 {
		if err := ping(client, *target, log); err != nil {
			os.Exit(1)
		}
		return
	}

	log.Info("keepalive loop started", "url", *target, "interval", interval.String())
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		_ = ping(client, *target, log)
		<-ticker.C
	}
}

func ping(client *http.Client, url string, log *slog.Logger) error {
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		log.Error("ping failed", "url", url, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		log.Error("ping failed", "url", url, "error", err)
		return err
	}

	log.Info("ping ok", "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
