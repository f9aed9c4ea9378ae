// Package scope decides which account boundaries a run covers and which
// credentials reach each of them.
package scope

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/organizations"
)

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// NewResolver creates a scope resolver. directory may be nil when
// organization mode is never requested.
func NewResolver(directory organizations.Service, roleName string) Resolver {
	if roleName == "" {
		roleName = DefaultOrgRoleName
	}
	return &resolver{
		directory: directory,
		roleName:  roleName,
	}
}

func (r *resolver) Resolve(ctx context.Context, req Request) ([]model.ScanScope, error) {
	switch req.Mode {
	case model.ScopeCurrent, "":
		return []model.ScanScope{{}}, nil
	case model.ScopeExplicit:
		scopes := make([]model.ScanScope, 0, len(req.RoleARNs))
		seen := make(map[string]bool, len(req.RoleARNs))
		for _, id := range req.RoleARNs {
			s, err := ParseRoleARN(id)
			if err != nil {
				return nil, err
			}
			if seen[s.RoleARN] {
				continue
			}
			seen[s.RoleARN] = true
			scopes = append(scopes, s)
		}
		return scopes, nil
	case model.ScopeOrganization:
		return r.resolveOrganization(ctx)
	default:
		return nil, fmt.Errorf("unknown scope mode %q", req.Mode)
	}
}

func (r *resolver) resolveOrganization(ctx context.Context) ([]model.ScanScope, error) {
	if r.directory == nil {
		return nil, fmt.Errorf("organization mode requires an organizations client")
	}

	accounts, err := r.directory.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	scopes := make([]model.ScanScope, 0, len(accounts))
	for _, a := range accounts {
		roleARN := arn.ARN{
			Partition: a.Partition,
			Service:   "iam",
			AccountID: a.ID,
			Resource:  "role/" + r.roleName,
		}.String()
		scopes = append(scopes, model.ScanScope{RoleARN: roleARN, AccountID: a.ID})
	}

	return scopes, nil
}

// ParseRoleARN validates an IAM role ARN and extracts its account ID.
func ParseRoleARN(id string) (model.ScanScope, error) {
	id = strings.TrimSpace(id)
	parsed, err := arn.Parse(id)
	if err != nil || strings.Count(id, ":") != 5 {
		return model.ScanScope{}, fmt.Errorf("%w: %q", ErrInvalidIdentifierFormat, id)
	}
	if parsed.Service != "iam" || parsed.Region != "" || !accountIDPattern.MatchString(parsed.AccountID) ||
		!strings.HasPrefix(parsed.Resource, "role/") || len(parsed.Resource) == len("role/") {
		return model.ScanScope{}, fmt.Errorf("%w: %q", ErrInvalidIdentifierFormat, id)
	}

	return model.ScanScope{RoleARN: id, AccountID: parsed.AccountID}, nil
}

// StrategyFor picks the credential path for s. A role in the caller's own
// account is never assumed.
func StrategyFor(s model.ScanScope, callerAccount string) Strategy {
	if !s.Delegated() || s.AccountID == callerAccount {
		return StrategyAmbient
	}
	return StrategyDelegated
}

// Configure returns the region-scoped config used to scan s.
func Configure(ctx context.Context, src CredentialSource, s model.ScanScope, callerAccount, region string) (aws.Config, Strategy, error) {
	strategy := StrategyFor(s, callerAccount)
	if strategy == StrategyAmbient {
		return src.Ambient(region), strategy, nil
	}

	cfg, err := src.Delegated(ctx, s.RoleARN, region)
	if err != nil {
		return aws.Config{}, strategy, fmt.Errorf("failed to assume %s in %s: %w", s.RoleARN, region, err)
	}
	return cfg, strategy, nil
}
