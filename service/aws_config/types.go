package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
)

// DefaultSessionName tags every delegated session opened by the inventory.
const DefaultSessionName = "aws-inventory"

type service struct{}

// Service is the interface for AWS configuration service.
type Service interface {
	GetAWSCfg(ctx context.Context, region string, profile string) (aws.Config, error)
}

// AssumeRoleClientFactory builds the STS client used to assume a role in one region.
type AssumeRoleClientFactory func(cfg aws.Config) stscreds.AssumeRoleAPIClient

// Credentials derives region-scoped configs from one base config, either
// with the base credentials or through a role assumed per region.
type Credentials struct {
	base        aws.Config
	sessionName string
	newClient   AssumeRoleClientFactory
}
