// Package settings merges command line flags with the YAML config file and
// validates the result.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/thirukguru/aws-inventory/model"
	awsconfig "github.com/thirukguru/aws-inventory/service/aws_config"
	"github.com/thirukguru/aws-inventory/service/scope"
	"github.com/thirukguru/aws-inventory/shared/logger"
	"gopkg.in/yaml.v3"
)

// NewService creates a settings service reading from the local filesystem.
func NewService() Service {
	return &service{readFile: os.ReadFile}
}

// Load reads the config file (when present), overlays flags and applies
// defaults. Flags win over the file.
func (s *service) Load(flags model.Flags) (model.Config, error) {
	file, err := s.readConfigFile(flags.ConfigPath)
	if err != nil {
		return model.Config{}, err
	}

	cfg := model.Config{
		Command:     flags.Command,
		Profile:     firstNonEmpty(flags.Profile, file.Profile),
		Region:      firstNonEmpty(flags.Region, file.Region),
		Regions:     flags.Regions,
		AllRegions:  flags.AllRegions,
		VpcIDs:      flags.VpcIDs,
		RoleARNs:    flags.RoleARNs,
		OrgRoleName: firstNonEmpty(flags.OrgRoleName, file.Organization.RoleName, scope.DefaultOrgRoleName),
		SessionName: firstNonEmpty(flags.SessionName, file.SessionName, awsconfig.DefaultSessionName),
		MaxParallel: flags.MaxParallel,
		Detail:      flags.Detail,
		Output:      strings.ToLower(firstNonEmpty(flags.Output, file.Output, model.OutputTable)),
		LogFile:     firstNonEmpty(flags.LogFile, file.Log.File, logger.DefaultPath(flags.Command)),
		LogLevel:    firstNonEmpty(flags.LogLevel, file.Log.Level, "info"),
	}
	if len(cfg.Regions) == 0 && !cfg.AllRegions {
		cfg.Regions = file.Regions
	}
	if len(cfg.Regions) == 0 && !cfg.AllRegions {
		cfg.Regions = slices.Clone(DefaultRegions)
	}
	cfg.Regions = DedupeRegions(cfg.Regions)
	if cfg.MaxParallel == 0 {
		cfg.MaxParallel = file.MaxParallel
	}
	if cfg.MaxParallel == 0 {
		cfg.MaxParallel = model.DefaultMaxParallel
	}

	switch {
	case flags.UseOrg:
		cfg.ScopeMode = model.ScopeOrganization
	case len(flags.RoleARNs) > 0:
		cfg.ScopeMode = model.ScopeExplicit
	default:
		cfg.ScopeMode = model.ScopeCurrent
	}

	if err := Validate(flags, cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func (s *service) readConfigFile(path string) (File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	resolved, err := logger.ResolvePath(path)
	if err != nil {
		return File{}, err
	}
	b, err := s.readFile(resolved)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(b, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", resolved, err)
	}
	return file, nil
}

// Validate checks the merged configuration. Role ARN syntax is checked later
// by scope resolution.
func Validate(flags model.Flags, cfg model.Config) error {
	if flags.UseOrg && len(flags.RoleARNs) > 0 {
		return errors.New("--use-org and --role-arns are mutually exclusive")
	}
	if !cfg.AllRegions && len(cfg.Regions) == 0 {
		return errors.New("at least one region must be specified")
	}
	for _, id := range cfg.VpcIDs {
		if !strings.HasPrefix(id, "vpc-") {
			return fmt.Errorf("invalid VPC ID format: %q, VPC IDs must start with 'vpc-'", id)
		}
	}
	if cfg.MaxParallel < 0 {
		return fmt.Errorf("--max-parallel must be positive, got %d", cfg.MaxParallel)
	}
	switch cfg.Output {
	case model.OutputTable, model.OutputJSON, model.OutputText:
	default:
		return fmt.Errorf("unsupported output format %q", cfg.Output)
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// DedupeRegions trims region names and drops empties and repeats, keeping
// first-seen order.
func DedupeRegions(input []string) []string {
	out := make([]string, 0, len(input))
	for _, r := range input {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
