package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/summarylive/pkg/api"
	"github.com/umputun/summarylive/pkg/config"
	"github.com/umputun/summarylive/pkg/live"
	"github.com/umputun/summarylive/pkg/push"
	"github.com/umputun/summarylive/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	BaseURL  string `short:"b" long:"base-url" env:"BASE_URL" description:"summaries backend url, overrides config"`
	Listen   string `short:"l" long:"listen" env:"LISTEN" description:"local server listen address, enables the server"`
	Date     string `long:"date" env:"FILTER_DATE" description:"initial date filter, YYYY-MM-DD"`
	Category string `long:"category" env:"FILTER_CATEGORY" description:"initial category filter"`
	Quiet    bool   `short:"q" long:"quiet" description:"don't print views and notices"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting summarylive version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, starts the live session and the optional local server,
// and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err = applyOverrides(cfg, opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	client, err := api.New(api.Params{
		BaseURL:    cfg.Source.BaseURL,
		ListPath:   cfg.Source.ListPath,
		DetailPath: cfg.Source.DetailPath,
		CheckPath:  cfg.Source.CheckPath,
		Timeout:    cfg.Source.Timeout,
		Retries:    cfg.Source.Retries,
		RetryDelay: cfg.Source.RetryDelay,
		UserAgent:  cfg.Source.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create data source client: %w", err)
	}

	conn := push.New(push.Options{
		Dialer:       push.NewHTTPDialer(push.NewHTTPClient(cfg.Source.Timeout), cfg.Source.UserAgent),
		Policy:       push.Policy{Base: cfg.Push.BaseDelay, Growth: cfg.Push.Growth, Max: cfg.Push.MaxDelay},
		DedupeWindow: cfg.PushDedupeWindow(),
	})

	params := live.Params{
		Source:       client,
		Pusher:       conn,
		Endpoint:     cfg.PushEndpoint(),
		Checker:      client,
		PollInterval: cfg.Poll.Interval,
		Filter:       cfg.InitialFilter(),
		Notice:       live.NoticeParams{Title: cfg.Notice.Title, Message: cfg.Notice.Message, Display: cfg.Notice.Display},
	}
	if !opts.Quiet {
		params.Listener = newConsole(os.Stdout)
	}

	session, err := live.New(params)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	g.Go(func() error {
		<-ctx.Done()
		session.Stop()
		return nil
	})

	if cfg.Server.Enabled {
		srv := server.New(cfg, session, revision, opts.Debug)
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// applyOverrides puts command line values over the loaded config and validates the result
func applyOverrides(cfg *config.Config, opts Opts) error {
	if opts.BaseURL != "" {
		cfg.Source.BaseURL = opts.BaseURL
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
		cfg.Server.Enabled = true
	}
	if opts.Date != "" {
		cfg.Filter.Date = strings.TrimSpace(opts.Date)
	}
	if opts.Category != "" {
		cfg.Filter.Category = strings.TrimSpace(opts.Category)
	}
	return cfg.Validate()
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stdout), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
