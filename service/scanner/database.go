package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/docdb"
	docdbtypes "github.com/aws/aws-sdk-go-v2/service/docdb/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/thirukguru/aws-inventory/model"
)

const docdbEngine = "docdb"

type databaseScanner struct{}

// NewDatabaseScanner lists RDS instances of a VPC, plus RDS and DocumentDB
// clusters. Cluster listings expose no VPC, so every cluster in the region is
// reported and flagged Unverified.
func NewDatabaseScanner() Scanner {
	return &databaseScanner{}
}

func (s *databaseScanner) Name() string { return "database" }

func (s *databaseScanner) Scan(ctx context.Context, clients Clients, vpcID string) ([]model.ResourceRecord, error) {
	var (
		records []model.ResourceRecord
		errs    []error
	)

	if clients.RDS == nil {
		errs = append(errs, errors.New("no RDS client"))
	} else {
		found, err := listDBInstances(ctx, clients.RDS, vpcID)
		records = append(records, found...)
		if err != nil {
			errs = append(errs, err)
		}

		found, err = listDBClusters(ctx, clients.RDS)
		records = append(records, found...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if clients.DocDB == nil {
		errs = append(errs, errors.New("no DocumentDB client"))
	} else {
		found, err := listDocDBClusters(ctx, clients.DocDB)
		records = append(records, found...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return records, errors.Join(errs...)
}

func listDBInstances(ctx context.Context, client RDSAPI, vpcID string) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := rds.NewDescribeDBInstancesPaginator(client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe DB instances: %w", err)
		}
		for _, db := range page.DBInstances {
			if db.DBSubnetGroup == nil || aws.ToString(db.DBSubnetGroup.VpcId) != vpcID {
				continue
			}
			records = append(records, model.ResourceRecord{
				ID:   arnOr(db.DBInstanceArn, db.DBInstanceIdentifier),
				Type: model.ResourceDatabaseInstance,
				Name: aws.ToString(db.DBInstanceIdentifier),
			})
		}
	}

	return records, nil
}

// listDBClusters skips DocumentDB clusters, which the RDS API also returns;
// those are reported by listDocDBClusters.
func listDBClusters(ctx context.Context, client RDSAPI) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := rds.NewDescribeDBClustersPaginator(client, &rds.DescribeDBClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe DB clusters: %w", err)
		}
		for _, c := range page.DBClusters {
			if aws.ToString(c.Engine) == docdbEngine {
				continue
			}
			records = append(records, model.ResourceRecord{
				ID:         arnOr(c.DBClusterArn, c.DBClusterIdentifier),
				Type:       model.ResourceDatabaseCluster,
				Name:       aws.ToString(c.DBClusterIdentifier),
				Unverified: true,
			})
		}
	}

	return records, nil
}

func listDocDBClusters(ctx context.Context, client DocDBAPI) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	paginator := docdb.NewDescribeDBClustersPaginator(client, &docdb.DescribeDBClustersInput{
		Filters: []docdbtypes.Filter{{Name: aws.String("engine"), Values: []string{docdbEngine}}},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to describe DocumentDB clusters: %w", err)
		}
		for _, c := range page.DBClusters {
			records = append(records, model.ResourceRecord{
				ID:         arnOr(c.DBClusterArn, c.DBClusterIdentifier),
				Type:       model.ResourceDocumentStoreCluster,
				Name:       aws.ToString(c.DBClusterIdentifier),
				Unverified: true,
			})
		}
	}

	return records, nil
}

// arnOr identifies database records by ARN, like load balancers, and falls
// back to the identifier when the ARN is absent.
func arnOr(arn, identifier *string) string {
	if id := aws.ToString(arn); id != "" {
		return id
	}
	return aws.ToString(identifier)
}
