// Command jobsctl triggers and inspects background jobs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/odyssey-erp/erp-dashboard/cmd/jobsctl/cli"
)

func main() {
	redisAddr := flag.String("redis", envOr("REDIS_ADDR", "127.0.0.1:6379"), "redis address")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: jobsctl [-redis addr] trigger <job> | stats | scheduled [n]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := cli.NewJobsCLI(*redisAddr)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		out any
		err error
	)
	switch flag.Arg(0) {
	case "trigger":
		if flag.NArg() < 2 {
			flag.Usage()
			os.Exit(2)
		}
		out, err = c.Trigger(ctx, flag.Arg(1))
	case "stats":
		out, err = c.InspectQueue()
	case "scheduled":
		size := 10
		if flag.NArg() > 1 {
			if _, scanErr := fmt.Sscanf(flag.Arg(1), "%d", &size); scanErr != nil {
				logger.Error("invalid page size", slog.String("value", flag.Arg(1)))
				os.Exit(2)
			}
		}
		out, err = c.ListScheduled(size)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(flag.Arg(0), slog.Any("error", err))
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", slog.Any("error", err))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
