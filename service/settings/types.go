package settings

import "github.com/thirukguru/aws-inventory/model"

// DefaultConfigPath is read when --config-path is not given and the file exists.
const DefaultConfigPath = "~/.aws-inventory/config.yaml"

// DefaultRegions are scanned when neither flags nor the file name any.
var DefaultRegions = []string{"us-east-1", "us-west-2"}

// File is the on-disk YAML configuration. Every field is optional.
type File struct {
	Profile      string           `yaml:"profile"`
	Region       string           `yaml:"region"`
	Regions      []string         `yaml:"regions"`
	Organization OrganizationFile `yaml:"organization"`
	SessionName  string           `yaml:"session_name"`
	MaxParallel  int              `yaml:"max_parallel"`
	Output       string           `yaml:"output"`
	Log          LogFile          `yaml:"log"`
}

// OrganizationFile configures organization mode.
type OrganizationFile struct {
	RoleName string `yaml:"role_name"`
}

// LogFile configures the log sink.
type LogFile struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type service struct {
	readFile func(string) ([]byte, error)
}

// Service merges flags with the config file into a validated model.Config.
type Service interface {
	Load(flags model.Flags) (model.Config, error)
}
