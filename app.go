// Package main is the entry point for the aws-inventory application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/flag"
	"github.com/thirukguru/aws-inventory/service/output"
	"github.com/thirukguru/aws-inventory/service/settings"
	"github.com/thirukguru/aws-inventory/shared/ansi"
	"github.com/thirukguru/aws-inventory/shared/banner"
	"github.com/thirukguru/aws-inventory/shared/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags, err := flag.NewService().GetParsedFlags(args)
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if flags.Version {
		output.NewService(model.OutputText).RenderVersion(versionInfo())
		return nil
	}

	cfg, err := settings.NewService().Load(flags)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closer, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ansi.EnableANSI()
	if cfg.Output != model.OutputJSON {
		banner.DrawBannerTitle(version)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info().
		Str("command", cfg.Command).
		Str("scope_mode", string(cfg.ScopeMode)).
		Str("version", version).
		Msg("run started")

	env, err := newEnvironment(ctx, cfg, log)
	if err != nil {
		return err
	}

	switch cfg.Command {
	case model.CommandVPC:
		return runVPC(ctx, env, cfg)
	case model.CommandRDS:
		return runRDS(ctx, env, cfg)
	default:
		return fmt.Errorf("unsupported command: %s", cfg.Command)
	}
}

func versionInfo() model.VersionInfo {
	return model.VersionInfo{Version: version, Commit: commit, Date: date}
}
