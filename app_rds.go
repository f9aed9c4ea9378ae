package main

import (
	"context"
	"fmt"
	"time"

	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/output"
	"github.com/thirukguru/aws-inventory/service/rdsinventory"
	"github.com/thirukguru/aws-inventory/shared/spinner"
)

func runRDS(ctx context.Context, env *environment, cfg model.Config) error {
	out := output.NewService(cfg.Output)
	start := time.Now()

	spinner.UpdateSpinner(fmt.Sprintf("Listing DB instances in %d region(s)...", len(env.regions)))

	svc := rdsinventory.NewService(env.logger, env.identity, env.credentials, rdsinventory.NewClient, cfg.MaxParallel)
	report, err := svc.List(ctx, env.scopes, env.regions)
	if err != nil {
		out.StopSpinner()
		return err
	}

	if err := out.RenderDBInstances(report.Instances); err != nil {
		return err
	}

	out.Finished(time.Since(start), rdsSummary(report, len(env.regions)))
	env.logger.Info().
		Int("instances", len(report.Instances)).
		Int("targets", len(report.Targets)).
		Int("failed", report.Failed()).
		Dur("elapsed", time.Since(start)).
		Msg("rds listing finished")
	return nil
}

func rdsSummary(report rdsinventory.Report, regions int) string {
	s := fmt.Sprintf("%d DB instance(s) across %d Region(s)", len(report.Instances), regions)
	if failed := report.Failed(); failed > 0 {
		s += fmt.Sprintf(", %d target(s) failed", failed)
	}
	return s
}
