package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"genpi/internal/namecache"
	"genpi/internal/namesource"
	"genpi/internal/namesource/namegen"
	"genpi/internal/pi/handler"
	"genpi/internal/pi/models"
	"genpi/internal/pi/service"
	"genpi/internal/platform/config"
	"genpi/internal/platform/httpserver"
	"genpi/internal/platform/logger"
	"genpi/internal/platform/metrics"
	httptransport "genpi/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies and either prints one record or serves
// HTTP. Business logic lives in internal packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "genpi: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	katakana  bool
	halfwidth bool
	server    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("genpi", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.katakana, "katakana", false, "render readings in katakana")
	fs.BoolVar(&opts.halfwidth, "halfwidth", false, "render readings in half-width katakana (requires --katakana)")
	fs.BoolVar(&opts.server, "server", false, "serve HTTP instead of printing one record")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	form, err := models.KanaFormFromFlags(opts.katakana, opts.halfwidth)
	if err != nil && !opts.server {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	if !opts.server {
		log := logger.NewWithWriter(stderr, cfg.LogLevel)
		svc := service.New(newNameCache(cfg, log, nil), log)
		return printOne(ctx, svc, form, stdout)
	}

	log := logger.New(cfg.LogLevel)
	m := metrics.New()
	svc := service.New(newNameCache(cfg, log, m), log)
	router := httptransport.NewRouter(cfg.BasePath, handler.New(svc, log), m, log)
	return serve(ctx, httpserver.New(cfg.Addr(), router), log)
}

func newNameCache(cfg config.Server, log *slog.Logger, m *metrics.Metrics) *namecache.Cache {
	var source namesource.Source = namegen.New(cfg.NamegenURL, log,
		namegen.WithHTTPClient(&http.Client{Timeout: cfg.NamegenTimeout}),
		namegen.WithMetrics(m),
	)
	return namecache.New(source, log,
		namecache.WithTTL(cfg.CacheTTL),
		namecache.WithMetrics(m),
	)
}

func printOne(ctx context.Context, svc *service.Service, form models.KanaForm, stdout io.Writer) error {
	pi, err := svc.Generate(ctx, form)
	if err != nil {
		return err
	}
	return json.NewEncoder(stdout).Encode(pi)
}

func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting genpi", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
