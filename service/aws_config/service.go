// Package awsconfig provides a service for loading AWS configuration and
// deriving per-region, per-role configs from it.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const mfaFallbackRegion = "us-east-1"

// loadSharedConfigProfile is a variable to allow mocking in tests.
var loadSharedConfigProfile = config.LoadSharedConfigProfile

// NewService creates a new AWS configuration service.
func NewService() Service {
	return &service{}
}

// GetAWSCfg loads the base config for profile and checks that its
// credentials resolve, so a bad profile fails before any scope is scanned.
func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	if profile != "" {
		shared, err := loadSharedConfigProfile(ctx, profile)
		if err == nil {
			if p, ok := mfaProfileFrom(shared, region); ok {
				return s.loadMFAConfig(ctx, profile, p)
			}
		}
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(region, profile)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if cfg.Credentials != nil {
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			return aws.Config{}, fmt.Errorf("failed to retrieve credentials: %w", err)
		}
	}

	return cfg, nil
}

func loadOptions(region, profile string) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	return append(opts, config.WithAssumeRoleCredentialOptions(func(o *stscreds.AssumeRoleOptions) {
		o.TokenProvider = stscreds.StdinTokenProvider
	}))
}

// mfaProfile is a role profile that needs a token code. LoadDefaultConfig
// does not prompt for those, so the role is assumed through Credentials.
type mfaProfile struct {
	roleARN       string
	serial        string
	sourceProfile string
	region        string
}

func mfaProfileFrom(shared config.SharedConfig, region string) (mfaProfile, bool) {
	if shared.RoleARN == "" || shared.MFASerial == "" {
		return mfaProfile{}, false
	}

	p := mfaProfile{
		roleARN:       shared.RoleARN,
		serial:        shared.MFASerial,
		sourceProfile: shared.SourceProfileName,
		region:        region,
	}
	if p.sourceProfile == "" {
		p.sourceProfile = "default"
	}
	if p.region == "" {
		p.region = shared.Region
	}
	if p.region == "" {
		p.region = mfaFallbackRegion
	}
	return p, true
}

func (s *service) loadMFAConfig(ctx context.Context, profile string, p mfaProfile) (aws.Config, error) {
	source, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(p.sourceProfile),
		config.WithRegion(p.region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load source profile %s for %s: %w", p.sourceProfile, profile, err)
	}

	cfg, err := NewCredentials(source, DefaultSessionName).
		assume(ctx, p.roleARN, p.region, mfaOptions(p.serial, stscreds.StdinTokenProvider))
	if err != nil {
		return aws.Config{}, fmt.Errorf("profile %s (MFA): %w", profile, err)
	}
	return cfg, nil
}

func mfaOptions(serial string, token func() (string, error)) func(*stscreds.AssumeRoleOptions) {
	return func(o *stscreds.AssumeRoleOptions) {
		o.SerialNumber = aws.String(serial)
		o.TokenProvider = token
	}
}

// NewCredentials creates a credential source rooted at base.
func NewCredentials(base aws.Config, sessionName string) *Credentials {
	return NewCredentialsWithClient(base, sessionName, func(cfg aws.Config) stscreds.AssumeRoleAPIClient {
		return sts.NewFromConfig(cfg)
	})
}

// NewCredentialsWithClient creates a credential source with a custom STS client factory (for testing).
func NewCredentialsWithClient(base aws.Config, sessionName string, newClient AssumeRoleClientFactory) *Credentials {
	if sessionName == "" {
		sessionName = DefaultSessionName
	}
	return &Credentials{
		base:        base,
		sessionName: sessionName,
		newClient:   newClient,
	}
}

// Ambient returns a copy of the base config pinned to region.
func (c *Credentials) Ambient(region string) aws.Config {
	cfg := c.base.Copy()
	cfg.Region = region
	return cfg
}

// Delegated assumes roleARN through the regional STS endpoint and returns a
// config for region carrying the session credentials. Sessions are never
// shared between regions.
func (c *Credentials) Delegated(ctx context.Context, roleARN, region string) (aws.Config, error) {
	return c.assume(ctx, roleARN, region)
}

func (c *Credentials) assume(ctx context.Context, roleARN, region string, optFns ...func(*stscreds.AssumeRoleOptions)) (aws.Config, error) {
	cfg := c.Ambient(region)

	optFns = append([]func(*stscreds.AssumeRoleOptions){func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = c.sessionName
	}}, optFns...)
	cfg.Credentials = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(c.newClient(cfg), roleARN, optFns...))

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, fmt.Errorf("failed to assume role: %w", err)
	}

	return cfg, nil
}
