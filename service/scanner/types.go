// Package scanner enumerates the resources that live inside one VPC. Each
// Scanner covers one service family and can fail without affecting the others.
package scanner

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/docdb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/thirukguru/aws-inventory/model"
)

// EC2API defines the EC2 client methods used by the compute scanner.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DescribeFlowLogs(ctx context.Context, params *ec2.DescribeFlowLogsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeFlowLogsOutput, error)
}

// ELBAPI defines the Elastic Load Balancing v2 client methods used by the load-balancing scanner.
type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
}

// RDSAPI defines the RDS client methods used by the database scanner.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
}

// DocDBAPI defines the DocumentDB client methods used by the database scanner.
type DocDBAPI interface {
	DescribeDBClusters(ctx context.Context, params *docdb.DescribeDBClustersInput, optFns ...func(*docdb.Options)) (*docdb.DescribeDBClustersOutput, error)
}

// Clients bundles the region-scoped clients every scanner may need.
type Clients struct {
	EC2   EC2API
	ELB   ELBAPI
	RDS   RDSAPI
	DocDB DocDBAPI
}

// NewClients builds real clients from cfg.
func NewClients(cfg aws.Config) Clients {
	return Clients{
		EC2:   ec2.NewFromConfig(cfg),
		ELB:   elbv2.NewFromConfig(cfg),
		RDS:   rds.NewFromConfig(cfg),
		DocDB: docdb.NewFromConfig(cfg),
	}
}

// Scanner enumerates one resource family inside a VPC. Sub-listings are
// independent: records gathered before a failure are returned together with
// the joined error.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, clients Clients, vpcID string) ([]model.ResourceRecord, error)
}
