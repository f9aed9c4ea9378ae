// Package vpc discovers VPCs and classifies their exposure and peering.
package vpc

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2ClientAPI defines the EC2 client methods used by this service.
type EC2ClientAPI interface {
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeInternetGateways(ctx context.Context, params *ec2.DescribeInternetGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error)
	DescribeVpcPeeringConnections(ctx context.Context, params *ec2.DescribeVpcPeeringConnectionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcPeeringConnectionsOutput, error)
}

// Service defines VPC discovery and classification.
type Service interface {
	ListNetworks(ctx context.Context, ids []string) ([]Network, error)
	IsPublic(ctx context.Context, vpcID string) (bool, error)
	Peers(ctx context.Context, vpcID string) ([]string, error)
	Classify(ctx context.Context, vpcID string) (Classification, error)
}

type service struct {
	client EC2ClientAPI
}

// Network is one VPC as returned by discovery.
type Network struct {
	ID      string
	Name    string
	OwnerID string
	CIDRs   []string
}

// Classification holds the derived exposure and peering facts of a VPC.
// Fields whose lookup failed keep their zero value.
type Classification struct {
	Public bool
	Peers  []string
}

// NewService creates a new VPC service.
func NewService(cfg aws.Config) Service {
	return &service{
		client: ec2.NewFromConfig(cfg),
	}
}

// NewServiceWithClient creates a new VPC service with a provided client (for testing).
func NewServiceWithClient(client EC2ClientAPI) Service {
	return &service{
		client: client,
	}
}
