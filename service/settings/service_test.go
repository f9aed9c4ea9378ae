package settings

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/aws-inventory/model"
)

func missingFile(string) ([]byte, error) {
	return nil, fs.ErrNotExist
}

func TestLoadDefaults(t *testing.T) {
	svc := &service{readFile: missingFile}

	cfg, err := svc.Load(model.Flags{Command: model.CommandVPC})
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1", "us-west-2"}, cfg.Regions)
	assert.Equal(t, model.ScopeCurrent, cfg.ScopeMode)
	assert.Equal(t, "OrganizationAccountAccessRole", cfg.OrgRoleName)
	assert.Equal(t, "aws-inventory", cfg.SessionName)
	assert.Equal(t, model.DefaultMaxParallel, cfg.MaxParallel)
	assert.Equal(t, model.OutputTable, cfg.Output)
	assert.Equal(t, "~/.aws-inventory/vpc.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.ListResources())
}

func TestLoadFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: audit
regions: [eu-west-1, eu-central-1]
organization:
  role_name: InventoryReader
session_name: nightly
max_parallel: 3
output: json
log:
  level: debug
`), 0o600))

	svc := NewService()

	cfg, err := svc.Load(model.Flags{Command: model.CommandRDS, ConfigPath: path, UseOrg: true})
	require.NoError(t, err)
	assert.Equal(t, "audit", cfg.Profile)
	assert.Equal(t, []string{"eu-west-1", "eu-central-1"}, cfg.Regions)
	assert.Equal(t, "InventoryReader", cfg.OrgRoleName)
	assert.Equal(t, "nightly", cfg.SessionName)
	assert.Equal(t, 3, cfg.MaxParallel)
	assert.Equal(t, model.OutputJSON, cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, model.ScopeOrganization, cfg.ScopeMode)

	cfg, err = svc.Load(model.Flags{
		Command:     model.CommandRDS,
		ConfigPath:  path,
		Regions:     []string{"us-east-1", "us-east-1"},
		MaxParallel: 9,
		Output:      "TEXT",
		RoleARNs:    []string{"arn:aws:iam::123456789012:role/Foo"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1"}, cfg.Regions)
	assert.Equal(t, 9, cfg.MaxParallel)
	assert.Equal(t, model.OutputText, cfg.Output)
	assert.Equal(t, model.ScopeExplicit, cfg.ScopeMode)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := NewService().Load(model.Flags{Command: model.CommandVPC, ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	svc := &service{readFile: func(string) ([]byte, error) { return []byte("regions: [unclosed"), nil }}
	_, err := svc.Load(model.Flags{Command: model.CommandVPC})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	svc := &service{readFile: missingFile}

	tests := []struct {
		name  string
		flags model.Flags
	}{
		{name: "org and arns", flags: model.Flags{UseOrg: true, RoleARNs: []string{"arn:aws:iam::123456789012:role/Foo"}}},
		{name: "bad vpc id", flags: model.Flags{VpcIDs: []string{"subnet-123"}}},
		{name: "bad output", flags: model.Flags{Output: "html"}},
		{name: "bad level", flags: model.Flags{LogLevel: "loud"}},
		{name: "negative parallel", flags: model.Flags{MaxParallel: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.flags.Command = model.CommandVPC
			_, err := svc.Load(tt.flags)
			require.Error(t, err)
		})
	}

	cfg, err := svc.Load(model.Flags{Command: model.CommandVPC, VpcIDs: []string{"vpc-123"}})
	require.NoError(t, err)
	assert.True(t, cfg.ListResources())
}

func TestAllRegionsSkipsDefaults(t *testing.T) {
	svc := &service{readFile: missingFile}

	cfg, err := svc.Load(model.Flags{Command: model.CommandVPC, AllRegions: true})
	require.NoError(t, err)
	assert.Empty(t, cfg.Regions)
}

func TestDedupeRegions(t *testing.T) {
	got := DedupeRegions([]string{"us-east-1", " us-east-1 ", "", "us-west-2", "us-west-2"})
	assert.Equal(t, []string{"us-east-1", "us-west-2"}, got)
}
