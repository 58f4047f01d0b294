package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"choromap/internal/config"
	"choromap/internal/loader"
	"choromap/internal/logger"
	"choromap/internal/metrics"
	"choromap/internal/tui"
	"choromap/internal/viewstate"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("dotenv: %v", err)
	}
	lf, err := logger.OpenFile()
	if err != nil {
		log.Fatal(err)
	}
	defer lf.Close()
	lg := logger.Setup(lf)

	cfg := config.FromEnv()
	opts := tui.Options{Dataset: cfg.Dataset}
	// choromap [dataset] [#/scope/period]
	for _, a := range os.Args[1:] {
		if strings.HasPrefix(a, "#") {
			opts.Fragment = a
		} else {
			opts.Dataset = a
		}
	}

	opts.Datasets, err = config.Catalog(cfg.DatasetsFile)
	if err != nil {
		log.Fatal(err)
	}
	if _, ok := config.Find(opts.Datasets, opts.Dataset); !ok {
		log.Fatal(fmt.Errorf("unknown dataset %q", opts.Dataset))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	opts.Store, err = openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer opts.Store.Close()
	opts.Loader = loader.New(&http.Client{Timeout: cfg.HTTPTimeout})

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			lg.Info("metrics_listen", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				lg.Error("metrics_server_failed", "err", err)
			}
		}()
	}

	lg.Info("start", "dataset", opts.Dataset, "fragment", opts.Fragment, "datasets", len(opts.Datasets))
	if _, err := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// openStore prefers redis when REDIS_ADDR is set and falls back to the local
// sqlite file when it cannot be reached.
func openStore(ctx context.Context, cfg config.Config) (viewstate.Store, error) {
	if cfg.RedisAddr != "" {
		s, err := viewstate.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err == nil {
			return s, nil
		}
		logger.L().Warn("redis_unavailable", "addr", cfg.RedisAddr, "err", err)
	}
	return viewstate.OpenSQLite(ctx, cfg.StatePath)
}
