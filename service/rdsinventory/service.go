// Package rdsinventory produces the flat, cross-account listing of RDS DB
// instances.
package rdsinventory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/rs/zerolog"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/scope"
	awssts "github.com/thirukguru/aws-inventory/service/sts"
	"golang.org/x/sync/errgroup"
)

// NewService creates the DB instance listing service. maxParallel bounds how
// many targets are listed at once.
func NewService(logger zerolog.Logger, identity awssts.Service, credentials scope.CredentialSource, clients ClientFactory, maxParallel int) Service {
	if clients == nil {
		clients = NewClient
	}
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &service{
		logger:      logger,
		identity:    identity,
		credentials: credentials,
		clients:     clients,
		maxParallel: maxParallel,
	}
}

// List walks every scope across every region. Targets are listed
// concurrently but the report keeps scope-then-region order.
func (s *service) List(ctx context.Context, scopes []model.ScanScope, regions []string) (Report, error) {
	caller, err := s.identity.GetCallerIdentity(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("unable to resolve caller account: %w", err)
	}

	targets := make([]Target, 0, len(scopes)*len(regions))
	for _, sc := range scopes {
		for _, region := range regions {
			targets = append(targets, Target{Scope: sc, Region: region, State: StateUnresolved})
		}
	}
	found := make([][]model.DBInstanceRecord, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i := range targets {
		g.Go(func() error {
			found[i] = s.runTarget(gctx, &targets[i], caller.AccountID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("listing interrupted: %w", err)
	}

	report := Report{Targets: targets}
	for _, records := range found {
		report.Instances = append(report.Instances, records...)
	}
	return report, nil
}

func (s *service) runTarget(ctx context.Context, t *Target, callerAccount string) []model.DBInstanceRecord {
	log := s.logger.With().Str("region", t.Region).Str("role_arn", t.Scope.RoleARN).Logger()

	cfg, strategy, err := scope.Configure(ctx, s.credentials, t.Scope, callerAccount, t.Region)
	t.Path = StateCurrentAccountPath
	if strategy == scope.StrategyDelegated {
		t.Path = StateDelegatedPath
	}
	t.State = t.Path
	if err != nil {
		return s.fail(log, t, err)
	}
	if t.Path == StateCurrentAccountPath && t.Scope.Delegated() {
		log.Info().Msg("role is in the current account, skipping AssumeRole")
	}

	records, err := listInstances(ctx, s.clients(cfg))
	if err != nil {
		return s.fail(log, t, err)
	}

	account, roleARN := callerAccount, ""
	if t.Path == StateDelegatedPath {
		account, roleARN = t.Scope.AccountID, t.Scope.RoleARN
	}
	for i := range records {
		records[i].Region = t.Region
		records[i].AccountID = account
		records[i].RoleARN = roleARN
	}

	t.State = StateScanned
	log.Info().Int("instances", len(records)).Msg("listed DB instances")
	return records
}

func (s *service) fail(log zerolog.Logger, t *Target, err error) []model.DBInstanceRecord {
	t.State = StateFailed
	t.Err = err
	log.Warn().Err(err).Stringer("path", t.Path).Msg("region skipped")
	return nil
}

func listInstances(ctx context.Context, client RDSClientAPI) ([]model.DBInstanceRecord, error) {
	var records []model.DBInstanceRecord

	paginator := rds.NewDescribeDBInstancesPaginator(client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe DB instances: %w", err)
		}
		for _, db := range page.DBInstances {
			records = append(records, model.DBInstanceRecord{
				InstanceID: aws.ToString(db.DBInstanceIdentifier),
				Engine:     aws.ToString(db.Engine),
				Status:     aws.ToString(db.DBInstanceStatus),
			})
		}
	}

	slices.SortFunc(records, func(a, b model.DBInstanceRecord) int {
		return cmp.Compare(a.InstanceID, b.InstanceID)
	})
	return records, nil
}
