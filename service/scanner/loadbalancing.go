package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/thirukguru/aws-inventory/model"
)

type loadBalancingScanner struct{}

// NewLoadBalancingScanner lists load balancers and target groups. The API has
// no VPC filter, so both are filtered on their own VpcId.
func NewLoadBalancingScanner() Scanner {
	return &loadBalancingScanner{}
}

func (s *loadBalancingScanner) Name() string { return "loadbalancing" }

func (s *loadBalancingScanner) Scan(ctx context.Context, clients Clients, vpcID string) ([]model.ResourceRecord, error) {
	if clients.ELB == nil {
		return nil, errors.New("no ELBv2 client")
	}

	var errs []error

	records, err := listLoadBalancers(ctx, clients.ELB, vpcID)
	if err != nil {
		errs = append(errs, err)
	}

	groups, err := listTargetGroups(ctx, clients.ELB, vpcID)
	records = append(records, groups...)
	if err != nil {
		errs = append(errs, err)
	}

	return records, errors.Join(errs...)
}

func listLoadBalancers(ctx context.Context, client ELBAPI, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := elbv2.NewDescribeLoadBalancersPaginator(client, &elbv2.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe load balancers: %w", err)
		}
		for _, lb := range page.LoadBalancers {
			if aws.ToString(lb.VpcId) != vpcID {
				continue
			}
			records = append(records, model.ResourceRecord{
				ID:   aws.ToString(lb.LoadBalancerArn),
				Type: model.ResourceLoadBalancer,
				Name: aws.ToString(lb.LoadBalancerName),
			})
		}
	}

	return records, nil
}

func listTargetGroups(ctx context.Context, client ELBAPI, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := elbv2.NewDescribeTargetGroupsPaginator(client, &elbv2.DescribeTargetGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe target groups: %w", err)
		}
		for _, tg := range page.TargetGroups {
			if aws.ToString(tg.VpcId) != vpcID {
				continue
			}
			records = append(records, model.ResourceRecord{
				ID:   aws.ToString(tg.TargetGroupArn),
				Type: model.ResourceTargetGroup,
				Name: aws.ToString(tg.TargetGroupName),
			})
		}
	}

	return records, nil
}
