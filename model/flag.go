package model

// Command names accepted as the first CLI argument.
const (
	CommandVPC     = "vpc"
	CommandRDS     = "rds"
	CommandVersion = "version"
)

// Flags represents the command line flags of one subcommand invocation.
// Zero values mean "not set on the command line"; defaults are applied when
// the flags are merged with the config file.
type Flags struct {
	Command     string
	Profile     string
	Region      string
	Regions     []string
	AllRegions  bool
	VpcIDs      []string
	RoleARNs    []string
	UseOrg      bool
	OrgRoleName string
	SessionName string
	MaxParallel int
	Detail      bool
	Output      string
	LogFile     string
	LogLevel    string
	ConfigPath  string
	Version     bool
}
