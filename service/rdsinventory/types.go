package rdsinventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/rs/zerolog"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/scope"
	awssts "github.com/thirukguru/aws-inventory/service/sts"
)

// RDSClientAPI defines the RDS client methods used by the service.
type RDSClientAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// ClientFactory builds an RDS client from a region-scoped config.
type ClientFactory func(cfg aws.Config) RDSClientAPI

// NewClient is the ClientFactory backed by the SDK client.
func NewClient(cfg aws.Config) RDSClientAPI {
	return rds.NewFromConfig(cfg)
}

// State is the progress of one (scope, region) target.
type State int

const (
	StateUnresolved State = iota
	StateCurrentAccountPath
	StateDelegatedPath
	StateScanned
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCurrentAccountPath:
		return "current-account"
	case StateDelegatedPath:
		return "delegated"
	case StateScanned:
		return "scanned"
	case StateFailed:
		return "failed"
	default:
		return "unresolved"
	}
}

// Target tracks one (scope, region) pair through the listing.
type Target struct {
	Scope  model.ScanScope
	Region string
	// Path is the credential path taken before the terminal state.
	Path  State
	State State
	Err   error
}

// Report is the outcome of one listing run.
type Report struct {
	Instances []model.DBInstanceRecord
	Targets   []Target
}

// Failed counts targets that ended in StateFailed.
func (r Report) Failed() int {
	n := 0
	for _, t := range r.Targets {
		if t.State == StateFailed {
			n++
		}
	}
	return n
}

// Service lists DB instances across scopes and regions.
type Service interface {
	List(ctx context.Context, scopes []model.ScanScope, regions []string) (Report, error)
}

type service struct {
	logger      zerolog.Logger
	identity    awssts.Service
	credentials scope.CredentialSource
	clients     ClientFactory
	maxParallel int
}
