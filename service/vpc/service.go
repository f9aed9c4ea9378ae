package vpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/thirukguru/aws-inventory/model"
)

const notFoundCode = "InvalidVpcID.NotFound"

// IsNotFound reports whether err is the EC2 error for an unknown VPC ID.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == notFoundCode
}

// ListNetworks returns every VPC visible in the region when ids is empty.
// Otherwise each id is looked up on its own and ids unknown in this region
// are skipped.
func (s *service) ListNetworks(ctx context.Context, ids []string) ([]Network, error) {
	if len(ids) == 0 {
		return s.listAll(ctx)
	}

	var networks []Network
	for _, id := range ids {
		out, err := s.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to describe VPC %s: %w", id, err)
		}
		for _, v := range out.Vpcs {
			networks = append(networks, toNetwork(v))
		}
	}

	return networks, nil
}

func (s *service) listAll(ctx context.Context) ([]Network, error) {
	var networks []Network

	paginator := ec2.NewDescribeVpcsPaginator(s.client, &ec2.DescribeVpcsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe VPCs: %w", err)
		}
		for _, v := range page.Vpcs {
			networks = append(networks, toNetwork(v))
		}
	}

	return networks, nil
}

func toNetwork(v types.Vpc) Network {
	return Network{
		ID:      aws.ToString(v.VpcId),
		Name:    nameTag(v.Tags),
		OwnerID: aws.ToString(v.OwnerId),
		CIDRs:   CIDRs(v),
	}
}

// CIDRs returns the primary block plus every IPv4 and IPv6 association of v,
// sorted and de-duplicated.
func CIDRs(v types.Vpc) []string {
	blocks := []string{aws.ToString(v.CidrBlock)}
	for _, assoc := range v.CidrBlockAssociationSet {
		blocks = append(blocks, aws.ToString(assoc.CidrBlock))
	}
	for _, assoc := range v.Ipv6CidrBlockAssociationSet {
		blocks = append(blocks, aws.ToString(assoc.Ipv6CidrBlock))
	}
	return model.SortedUnique(blocks)
}

// IsPublic reports whether any internet gateway is attached to the VPC.
func (s *service) IsPublic(ctx context.Context, vpcID string) (bool, error) {
	paginator := ec2.NewDescribeInternetGatewaysPaginator(s.client, &ec2.DescribeInternetGatewaysInput{
		Filters: []types.Filter{{Name: aws.String("attachment.vpc-id"), Values: []string{vpcID}}},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to describe internet gateways: %w", err)
		}
		for _, igw := range page.InternetGateways {
			for _, att := range igw.Attachments {
				if aws.ToString(att.VpcId) == vpcID {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

// Peers returns the VPCs on the other side of every active peering
// connection of vpcID, whichever side vpcID is on.
func (s *service) Peers(ctx context.Context, vpcID string) ([]string, error) {
	var peers []string

	sides := []struct {
		filter string
		self   func(types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo
		other  func(types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo
	}{
		{
			filter: "requester-vpc-info.vpc-id",
			self:   func(c types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo { return c.RequesterVpcInfo },
			other:  func(c types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo { return c.AccepterVpcInfo },
		},
		{
			filter: "accepter-vpc-info.vpc-id",
			self:   func(c types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo { return c.AccepterVpcInfo },
			other:  func(c types.VpcPeeringConnection) *types.VpcPeeringConnectionVpcInfo { return c.RequesterVpcInfo },
		},
	}

	for _, side := range sides {
		paginator := ec2.NewDescribeVpcPeeringConnectionsPaginator(s.client, &ec2.DescribeVpcPeeringConnectionsInput{
			Filters: []types.Filter{
				{Name: aws.String(side.filter), Values: []string{vpcID}},
				{Name: aws.String("status-code"), Values: []string{string(types.VpcPeeringConnectionStateReasonCodeActive)}},
			},
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to describe peering connections: %w", err)
			}
			for _, conn := range page.VpcPeeringConnections {
				if conn.Status == nil || conn.Status.Code != types.VpcPeeringConnectionStateReasonCodeActive {
					continue
				}
				self, other := side.self(conn), side.other(conn)
				if self == nil || other == nil || aws.ToString(self.VpcId) != vpcID {
					continue
				}
				peers = append(peers, aws.ToString(other.VpcId))
			}
		}
	}

	return model.SortedUnique(peers), nil
}

// Classify runs both lookups independently. A failed lookup leaves its field
// at the zero value and its error is joined into the returned error.
func (s *service) Classify(ctx context.Context, vpcID string) (Classification, error) {
	var (
		c    Classification
		errs []error
	)

	public, err := s.IsPublic(ctx, vpcID)
	if err != nil {
		errs = append(errs, err)
	} else {
		c.Public = public
	}

	peers, err := s.Peers(ctx, vpcID)
	if err != nil {
		errs = append(errs, err)
	} else {
		c.Peers = peers
	}

	return c, errors.Join(errs...)
}

func nameTag(tags []types.Tag) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == "Name" {
			return aws.ToString(t.Value)
		}
	}
	return ""
}
