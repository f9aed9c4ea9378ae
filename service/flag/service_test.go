package flag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/aws-inventory/model"
)

func TestGetParsedFlagsVPC(t *testing.T) {
	flags, err := NewService().GetParsedFlags([]string{
		"vpc",
		"--profile", "prod",
		"-r", "us-east-1, us-west-2",
		"-r", "eu-west-1",
		"--role-arns", "arn:aws:iam::123456789012:role/Foo",
		"--org-role-name", "AuditRole",
		"--session-name", "inv",
		"--max-parallel", "4",
		"--detail",
		"--output", "json",
		"--log-file", "-",
		"--log-level", "debug",
		"--config-path", "/tmp/inventory.yaml",
		"vpc-123", "vpc-456",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CommandVPC, flags.Command)
	assert.Equal(t, "prod", flags.Profile)
	assert.Equal(t, []string{"us-east-1", "us-west-2", "eu-west-1"}, flags.Regions)
	assert.Equal(t, []string{"arn:aws:iam::123456789012:role/Foo"}, flags.RoleARNs)
	assert.Equal(t, "AuditRole", flags.OrgRoleName)
	assert.Equal(t, "inv", flags.SessionName)
	assert.Equal(t, 4, flags.MaxParallel)
	assert.True(t, flags.Detail)
	assert.Equal(t, "json", flags.Output)
	assert.Equal(t, "-", flags.LogFile)
	assert.Equal(t, "debug", flags.LogLevel)
	assert.Equal(t, "/tmp/inventory.yaml", flags.ConfigPath)
	assert.Equal(t, []string{"vpc-123", "vpc-456"}, flags.VpcIDs)
}

func TestGetParsedFlagsRDSDefaultsAreZero(t *testing.T) {
	flags, err := NewService().GetParsedFlags([]string{"rds", "--use-org"})
	require.NoError(t, err)

	assert.Equal(t, model.CommandRDS, flags.Command)
	assert.True(t, flags.UseOrg)
	assert.Empty(t, flags.Regions)
	assert.Zero(t, flags.MaxParallel)
	assert.Empty(t, flags.Output)
	assert.False(t, flags.Detail)
}

func TestGetParsedFlagsRejectsUnknown(t *testing.T) {
	_, err := NewService().GetParsedFlags(nil)
	require.ErrorIs(t, err, ErrUsage)

	_, err = NewService().GetParsedFlags([]string{"scan"})
	require.ErrorIs(t, err, ErrUsage)

	_, err = NewService().GetParsedFlags([]string{"rds", "--detail"})
	require.Error(t, err)

	_, err = NewService().GetParsedFlags([]string{"rds", "extra"})
	require.Error(t, err)
}

func TestGetParsedFlagsVersion(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		flags, err := NewService().GetParsedFlags([]string{arg})
		require.NoError(t, err)
		assert.True(t, flags.Version)
	}
}
