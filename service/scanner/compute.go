package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/thirukguru/aws-inventory/model"
)

type computeScanner struct{}

// NewComputeScanner lists instances, network interfaces, NAT gateways and
// flow logs of a VPC.
func NewComputeScanner() Scanner {
	return &computeScanner{}
}

func (s *computeScanner) Name() string { return "compute" }

func (s *computeScanner) Scan(ctx context.Context, clients Clients, vpcID string) ([]model.ResourceRecord, error) {
	if clients.EC2 == nil {
		return nil, errors.New("no EC2 client")
	}

	var (
		records []model.ResourceRecord
		errs    []error
	)
	for _, list := range []func(context.Context, EC2API, string) ([]model.ResourceRecord, error){
		listInstances,
		listNetworkInterfaces,
		listNATGateways,
		listFlowLogs,
	} {
		found, err := list(ctx, clients.EC2, vpcID)
		records = append(records, found...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return records, errors.Join(errs...)
}

func vpcFilter(name, vpcID string) []types.Filter {
	return []types.Filter{{Name: aws.String(name), Values: []string{vpcID}}}
}

func listInstances(ctx context.Context, client EC2API, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{
		Filters: vpcFilter("vpc-id", vpcID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, r := range page.Reservations {
			for _, inst := range r.Instances {
				records = append(records, model.ResourceRecord{
					ID:   aws.ToString(inst.InstanceId),
					Type: model.ResourceComputeInstance,
					Name: ec2NameTag(inst.Tags),
				})
			}
		}
	}

	return records, nil
}

func listNetworkInterfaces(ctx context.Context, client EC2API, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := ec2.NewDescribeNetworkInterfacesPaginator(client, &ec2.DescribeNetworkInterfacesInput{
		Filters: vpcFilter("vpc-id", vpcID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe network interfaces: %w", err)
		}
		for _, eni := range page.NetworkInterfaces {
			records = append(records, model.ResourceRecord{
				ID:   aws.ToString(eni.NetworkInterfaceId),
				Type: model.ResourceNetworkInterface,
				Name: aws.ToString(eni.Description),
			})
		}
	}

	return records, nil
}

func listNATGateways(ctx context.Context, client EC2API, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := ec2.NewDescribeNatGatewaysPaginator(client, &ec2.DescribeNatGatewaysInput{
		Filter: vpcFilter("vpc-id", vpcID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe NAT gateways: %w", err)
		}
		for _, nat := range page.NatGateways {
			records = append(records, model.ResourceRecord{
				ID:   aws.ToString(nat.NatGatewayId),
				Type: model.ResourceNATGateway,
				Name: ec2NameTag(nat.Tags),
			})
		}
	}

	return records, nil
}

func listFlowLogs(ctx context.Context, client EC2API, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := ec2.NewDescribeFlowLogsPaginator(client, &ec2.DescribeFlowLogsInput{
		Filter: vpcFilter("resource-id", vpcID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe flow logs: %w", err)
		}
		for _, fl := range page.FlowLogs {
			name := aws.ToString(fl.LogGroupName)
			if name == "" {
				name = aws.ToString(fl.LogDestination)
			}
			records = append(records, model.ResourceRecord{
				ID:   aws.ToString(fl.FlowLogId),
				Type: model.ResourceFlowLog,
				Name: name,
			})
		}
	}

	return records, nil
}

func ec2NameTag(tags []types.Tag) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == "Name" {
			return aws.ToString(t.Value)
		}
	}
	return ""
}
