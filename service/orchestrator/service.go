// Package orchestrator drives the VPC inventory across scopes and regions and
// merges everything found into one ordered result.
package orchestrator

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/scanner"
	"github.com/thirukguru/aws-inventory/service/scope"
	awssts "github.com/thirukguru/aws-inventory/service/sts"
	"github.com/thirukguru/aws-inventory/service/vpc"
	"golang.org/x/sync/errgroup"
)

// Service is the interface for the VPC scan orchestrator.
type Service interface {
	Scan(ctx context.Context, scopes []model.ScanScope, opts Options) (*model.ScanResult, error)
}

// NewService creates a VPC scan orchestrator.
func NewService(
	logger zerolog.Logger,
	identity awssts.Service,
	credentials scope.CredentialSource,
	clients ClientFactory,
	scanners []scanner.Scanner,
) Service {
	if clients == nil {
		clients = NewClients
	}
	return &service{
		logger:      logger,
		identity:    identity,
		credentials: credentials,
		clients:     clients,
		scanners:    scanners,
	}
}

// Scan resolves the caller identity, then walks regions and scopes in order.
// Only the caller identity lookup and cancellation are fatal; every other
// failure is logged and shrinks the result.
func (s *service) Scan(ctx context.Context, scopes []model.ScanScope, opts Options) (*model.ScanResult, error) {
	caller, err := s.identity.GetCallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve caller account: %w", err)
	}

	if opts.MaxParallel <= 0 {
		opts.MaxParallel = model.DefaultMaxParallel
	}

	result := model.NewScanResult()
	for _, region := range opts.Regions {
		for _, sc := range scopes {
			s.scanScope(ctx, result, sc, caller.AccountID, region, opts)
		}
	}
	// A cancelled run is incomplete, not a smaller inventory.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}
	result.RegionsScanned = len(opts.Regions)

	return result, nil
}

func (s *service) scanScope(ctx context.Context, result *model.ScanResult, sc model.ScanScope, callerAccount, region string, opts Options) {
	log := s.logger.With().Str("region", region).Str("role_arn", sc.RoleARN).Logger()

	cfg, strategy, err := scope.Configure(ctx, s.credentials, sc, callerAccount, region)
	if err != nil {
		log.Warn().Err(err).Msg("skipping scope")
		return
	}
	log.Debug().Stringer("strategy", strategy).Msg("scanning scope")

	account := sc.AccountID
	if strategy == scope.StrategyAmbient {
		account = callerAccount
	}

	clients := s.clients(cfg)
	networks, err := clients.Network.ListNetworks(ctx, opts.VpcIDs)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list VPCs")
		return
	}

	for _, id := range opts.VpcIDs {
		if !slices.ContainsFunc(networks, func(n vpc.Network) bool { return n.ID == id }) {
			log.Debug().Str("vpc_id", id).Msg("VPC not found in region")
		}
	}

	for _, n := range networks {
		rec := s.scanNetwork(ctx, log, clients, n, opts)
		rec.Region = region
		rec.RoleARN = sc.RoleARN
		rec.AccountID = n.OwnerID
		if rec.AccountID == "" {
			rec.AccountID = account
		}
		result.Merge(rec)
	}
}

// scanNetwork classifies one VPC and runs the scanners with bounded fan-out.
// A failed scanner contributes nothing for this VPC. Each task owns its own
// slot, so the record is assembled only after Wait.
func (s *service) scanNetwork(ctx context.Context, log zerolog.Logger, clients Clients, n vpc.Network, opts Options) model.NetworkRecord {
	log = log.With().Str("vpc_id", n.ID).Logger()

	var (
		classification vpc.Classification
		found          = make([][]model.ResourceRecord, len(s.scanners))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxParallel)

	g.Go(func() error {
		c, err := clients.Network.Classify(gctx, n.ID)
		if err != nil {
			log.Warn().Err(err).Msg("classification incomplete")
		}
		classification = c
		return nil
	})

	if opts.ListResources {
		for i, sc := range s.scanners {
			g.Go(func() error {
				records, err := sc.Scan(gctx, clients.Resources, n.ID)
				if err != nil {
					log.Warn().Err(err).Str("scanner", sc.Name()).Int("discarded", len(records)).Msg("scanner failed")
					return nil
				}
				found[i] = records
				return nil
			})
		}
	}

	// Tasks never return errors; Wait only joins them.
	_ = g.Wait()

	rec := model.NetworkRecord{
		VpcID:  n.ID,
		Name:   n.Name,
		CIDRs:  n.CIDRs,
		Public: classification.Public,
		Peers:  classification.Peers,
	}
	for _, records := range found {
		rec.Resources = append(rec.Resources, records...)
	}
	return rec
}
