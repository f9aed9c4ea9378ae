package main

import (
	"context"
	"fmt"
	"time"

	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/orchestrator"
	"github.com/thirukguru/aws-inventory/service/output"
	"github.com/thirukguru/aws-inventory/service/scanner"
	"github.com/thirukguru/aws-inventory/shared/spinner"
)

func runVPC(ctx context.Context, env *environment, cfg model.Config) error {
	out := output.NewService(cfg.Output)
	start := time.Now()

	spinner.UpdateSpinner(fmt.Sprintf("Scanning VPCs in %d region(s)...", len(env.regions)))

	svc := orchestrator.NewService(env.logger, env.identity, env.credentials, orchestrator.NewClients, scanner.Default())
	result, err := svc.Scan(ctx, env.scopes, orchestrator.Options{
		Regions:       env.regions,
		VpcIDs:        cfg.VpcIDs,
		ListResources: cfg.ListResources(),
		MaxParallel:   cfg.MaxParallel,
	})
	if err != nil {
		out.StopSpinner()
		return err
	}

	if err := out.RenderVPCs(result, cfg.ListResources()); err != nil {
		return err
	}

	out.Finished(time.Since(start), vpcSummary(result))
	env.logger.Info().
		Int("vpcs", result.Len()).
		Int("regions", result.RegionsScanned).
		Dur("elapsed", time.Since(start)).
		Msg("vpc scan finished")
	return nil
}

func vpcSummary(result *model.ScanResult) string {
	return fmt.Sprintf("%d VPC(s) across %d Region(s)", result.Len(), result.RegionsScanned)
}
