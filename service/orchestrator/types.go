package orchestrator

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/thirukguru/aws-inventory/service/scanner"
	"github.com/thirukguru/aws-inventory/service/scope"
	awssts "github.com/thirukguru/aws-inventory/service/sts"
	"github.com/thirukguru/aws-inventory/service/vpc"
)

// Clients are the region-scoped clients used to scan one (scope, region).
type Clients struct {
	Network   vpc.Service
	Resources scanner.Clients
}

// ClientFactory builds Clients from a region-scoped config.
type ClientFactory func(cfg aws.Config) Clients

// NewClients is the ClientFactory backed by real SDK clients.
func NewClients(cfg aws.Config) Clients {
	return Clients{
		Network:   vpc.NewService(cfg),
		Resources: scanner.NewClients(cfg),
	}
}

// Options control one scan run.
type Options struct {
	Regions       []string
	VpcIDs        []string
	ListResources bool
	MaxParallel   int
}

type service struct {
	logger      zerolog.Logger
	identity    awssts.Service
	credentials scope.CredentialSource
	clients     ClientFactory
	scanners    []scanner.Scanner
}
