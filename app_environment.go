package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog"
	"github.com/thirukguru/aws-inventory/model"
	awsconfig "github.com/thirukguru/aws-inventory/service/aws_config"
	"github.com/thirukguru/aws-inventory/service/organizations"
	"github.com/thirukguru/aws-inventory/service/scope"
	"github.com/thirukguru/aws-inventory/service/settings"
	awssts "github.com/thirukguru/aws-inventory/service/sts"
	"github.com/thirukguru/aws-inventory/shared/spinner"
)

const fallbackRegion = "us-east-1"

// regionDescriber is the EC2 call used for --all-regions discovery.
type regionDescriber interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// environment holds everything a subcommand needs after startup.
type environment struct {
	logger      zerolog.Logger
	regions     []string
	scopes      []model.ScanScope
	identity    awssts.Service
	credentials *awsconfig.Credentials
}

func newEnvironment(ctx context.Context, cfg model.Config, log zerolog.Logger) (*environment, error) {
	// Role ARNs are validated before any credentials are loaded.
	if cfg.ScopeMode == model.ScopeExplicit {
		for _, id := range cfg.RoleARNs {
			if _, err := scope.ParseRoleARN(id); err != nil {
				return nil, err
			}
		}
	}

	base, err := awsconfig.NewService().GetAWSCfg(ctx, bootstrapRegion(cfg), cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if base.Region == "" {
		base.Region = fallbackRegion
	}

	spinner.StartSpinner("Resolving account scopes...")

	resolver := scope.NewResolver(organizations.NewService(base), cfg.OrgRoleName)
	scopes, err := resolver.Resolve(ctx, scope.Request{Mode: cfg.ScopeMode, RoleARNs: cfg.RoleARNs})
	if err != nil {
		spinner.StopSpinner()
		return nil, err
	}

	regions, err := resolveRegions(ctx, cfg, ec2.NewFromConfig(base))
	if err != nil {
		spinner.StopSpinner()
		return nil, err
	}

	log.Info().
		Int("scopes", len(scopes)).
		Strs("regions", regions).
		Msg("targets resolved")

	return &environment{
		logger:      log,
		regions:     regions,
		scopes:      scopes,
		identity:    awssts.NewService(base),
		credentials: awsconfig.NewCredentials(base, cfg.SessionName),
	}, nil
}

// bootstrapRegion picks the region used to load base credentials and call
// the global endpoints.
func bootstrapRegion(cfg model.Config) string {
	if cfg.Region != "" {
		return cfg.Region
	}
	if len(cfg.Regions) > 0 {
		return cfg.Regions[0]
	}
	return ""
}

func resolveRegions(ctx context.Context, cfg model.Config, client regionDescriber) ([]string, error) {
	if !cfg.AllRegions {
		regions := settings.DedupeRegions(cfg.Regions)
		if len(regions) == 0 {
			return nil, fmt.Errorf("no regions configured")
		}
		return regions, nil
	}

	out, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to discover regions: %w", err)
	}

	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		name := strings.TrimSpace(aws.ToString(r.RegionName))
		if name == "" {
			continue
		}
		regions = append(regions, name)
	}
	regions = settings.DedupeRegions(regions)
	if len(regions) == 0 {
		return nil, fmt.Errorf("no enabled regions discovered")
	}
	return regions, nil
}
