// Package flag parses the subcommand and its flags.
package flag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/thirukguru/aws-inventory/model"
)

// Usage is printed when no subcommand is given.
const Usage = `usage: aws-inventory <command> [flags]

commands:
  vpc [flags] [VPC_ID...]   list VPCs, their exposure, peering and resources
  rds [flags]               list RDS DB instances
  version                   print version information`

// ErrUsage is returned when the command line names no known subcommand.
var ErrUsage = errors.New(Usage)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses args, where args[0] is the subcommand.
func (s *service) GetParsedFlags(args []string) (model.Flags, error) {
	if len(args) == 0 {
		return model.Flags{}, ErrUsage
	}

	command := args[0]
	switch command {
	case model.CommandVersion, "--version", "-v":
		return model.Flags{Command: model.CommandVersion, Version: true}, nil
	case model.CommandVPC, model.CommandRDS:
	default:
		return model.Flags{}, fmt.Errorf("unknown command %q\n%w", command, ErrUsage)
	}

	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	profile := fs.StringP("profile", "p", "", "AWS profile to use")
	region := fs.String("region", "", "Bootstrap AWS region for identity and organization calls")
	regions := fs.StringSliceP("regions", "r", nil, "AWS regions to scan, repeatable or comma-separated (default us-east-1,us-west-2)")
	allRegions := fs.Bool("all-regions", false, "Scan all enabled AWS regions")
	roleARNs := fs.StringSlice("role-arns", nil, "IAM role ARNs to scan through, repeatable or comma-separated")
	useOrg := fs.Bool("use-org", false, "Scan every account of the AWS Organization")
	orgRoleName := fs.String("org-role-name", "", "Role assumed in each organization account (default OrganizationAccountAccessRole)")
	sessionName := fs.String("session-name", "", "Session name used when assuming roles")
	maxParallel := fs.Int("max-parallel", 0, "Maximum concurrent API fan-out (default 6)")
	output := fs.StringP("output", "o", "", "Output format (table, json or text)")
	logFile := fs.String("log-file", "", "Log file path, - for stderr (default ~/.aws-inventory/<command>.log)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	configPath := fs.String("config-path", "", "Path to aws-inventory config file")

	var detail *bool
	if command == model.CommandVPC {
		detail = fs.Bool("detail", false, "List resources even when no VPC IDs are given")
	}

	if err := fs.Parse(args[1:]); err != nil {
		return model.Flags{}, err
	}

	flags := model.Flags{
		Command:     command,
		Profile:     *profile,
		Region:      strings.TrimSpace(*region),
		Regions:     trimAll(*regions),
		AllRegions:  *allRegions,
		RoleARNs:    trimAll(*roleARNs),
		UseOrg:      *useOrg,
		OrgRoleName: *orgRoleName,
		SessionName: *sessionName,
		MaxParallel: *maxParallel,
		Output:      *output,
		LogFile:     *logFile,
		LogLevel:    *logLevel,
		ConfigPath:  *configPath,
	}

	if command == model.CommandVPC {
		flags.Detail = *detail
		flags.VpcIDs = trimAll(fs.Args())
	} else if fs.NArg() > 0 {
		return model.Flags{}, fmt.Errorf("rds takes no positional arguments, got %v", fs.Args())
	}

	return flags, nil
}

func trimAll(in []string) []string {
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
