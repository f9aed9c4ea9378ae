package awsconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAssumeRoleClient struct {
	region string
	input  *sts.AssumeRoleInput
	err    error
}

func (m *mockAssumeRoleClient) AssumeRole(_ context.Context, params *sts.AssumeRoleInput, _ ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sts.AssumeRoleOutput{Credentials: &types.Credentials{
		AccessKeyId:     aws.String("AKIA" + m.region),
		SecretAccessKey: aws.String("secret"),
		SessionToken:    aws.String("token"),
		Expiration:      aws.Time(time.Now().Add(time.Hour)),
	}}, nil
}

func TestAmbientPinsRegion(t *testing.T) {
	base := aws.Config{Region: "us-east-1"}
	creds := NewCredentials(base, "")

	cfg := creds.Ambient("eu-west-1")
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "us-east-1", base.Region)
}

func TestDelegatedAssumesPerRegion(t *testing.T) {
	var clients []*mockAssumeRoleClient
	creds := NewCredentialsWithClient(aws.Config{Region: "us-east-1"}, "ls-test", func(cfg aws.Config) stscreds.AssumeRoleAPIClient {
		c := &mockAssumeRoleClient{region: cfg.Region}
		clients = append(clients, c)
		return c
	})

	cfg, err := creds.Delegated(context.Background(), "arn:aws:iam::999999999999:role/Reader", "ap-south-1")
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.Region)

	v, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAap-south-1", v.AccessKeyID)

	require.Len(t, clients, 1)
	assert.Equal(t, "ap-south-1", clients[0].region)
	assert.Equal(t, "arn:aws:iam::999999999999:role/Reader", aws.ToString(clients[0].input.RoleArn))
	assert.Equal(t, "ls-test", aws.ToString(clients[0].input.RoleSessionName))
}

func TestDelegatedSurfacesAssumeFailure(t *testing.T) {
	creds := NewCredentialsWithClient(aws.Config{}, "", func(aws.Config) stscreds.AssumeRoleAPIClient {
		return &mockAssumeRoleClient{err: errors.New("AccessDenied")}
	})

	_, err := creds.Delegated(context.Background(), "arn:aws:iam::999999999999:role/Reader", "us-west-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestMFAProfileFrom(t *testing.T) {
	_, ok := mfaProfileFrom(config.SharedConfig{RoleARN: "arn:aws:iam::123456789012:role/Admin"}, "")
	assert.False(t, ok)

	p, ok := mfaProfileFrom(config.SharedConfig{
		RoleARN:   "arn:aws:iam::123456789012:role/Admin",
		MFASerial: "arn:aws:iam::111111111111:mfa/ops",
		Region:    "eu-west-1",
	}, "")
	require.True(t, ok)
	assert.Equal(t, "default", p.sourceProfile)
	assert.Equal(t, "eu-west-1", p.region)

	p, _ = mfaProfileFrom(config.SharedConfig{
		RoleARN:           "arn:aws:iam::123456789012:role/Admin",
		MFASerial:         "arn:aws:iam::111111111111:mfa/ops",
		SourceProfileName: "base",
	}, "")
	assert.Equal(t, "base", p.sourceProfile)
	assert.Equal(t, mfaFallbackRegion, p.region)

	p, _ = mfaProfileFrom(config.SharedConfig{
		RoleARN:   "arn:aws:iam::123456789012:role/Admin",
		MFASerial: "arn:aws:iam::111111111111:mfa/ops",
		Region:    "eu-west-1",
	}, "ap-south-1")
	assert.Equal(t, "ap-south-1", p.region)
}

func TestLoadOptions(t *testing.T) {
	var o config.LoadOptions
	for _, fn := range loadOptions("eu-central-1", "audit") {
		require.NoError(t, fn(&o))
	}
	assert.Equal(t, "eu-central-1", o.Region)
	assert.Equal(t, "audit", o.SharedConfigProfile)
	assert.NotNil(t, o.AssumeRoleCredentialOptions)

	o = config.LoadOptions{}
	for _, fn := range loadOptions("", "") {
		require.NoError(t, fn(&o))
	}
	assert.Empty(t, o.Region)
	assert.Empty(t, o.SharedConfigProfile)
}

func TestAssumeWithMFASendsTokenCode(t *testing.T) {
	client := &mockAssumeRoleClient{region: "us-east-1"}
	creds := NewCredentialsWithClient(aws.Config{}, "", func(aws.Config) stscreds.AssumeRoleAPIClient { return client })

	_, err := creds.assume(context.Background(), "arn:aws:iam::123456789012:role/Admin", "us-east-1",
		mfaOptions("arn:aws:iam::111111111111:mfa/ops", func() (string, error) { return "123456", nil }))
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::111111111111:mfa/ops", aws.ToString(client.input.SerialNumber))
	assert.Equal(t, "123456", aws.ToString(client.input.TokenCode))
	assert.Equal(t, DefaultSessionName, aws.ToString(client.input.RoleSessionName))
}
