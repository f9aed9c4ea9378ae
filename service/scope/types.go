package scope

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/service/organizations"
)

// DefaultOrgRoleName is the role assumed in every member account in
// organization mode when no other name is configured.
const DefaultOrgRoleName = "OrganizationAccountAccessRole"

// ErrInvalidIdentifierFormat is returned for role identifiers that are not
// IAM role ARNs.
var ErrInvalidIdentifierFormat = errors.New("invalid role identifier format")

// Strategy is the credential path used for one scope.
type Strategy int

const (
	// StrategyAmbient uses the caller's own credentials.
	StrategyAmbient Strategy = iota
	// StrategyDelegated assumes the scope's role.
	StrategyDelegated
)

func (s Strategy) String() string {
	if s == StrategyDelegated {
		return "delegated"
	}
	return "ambient"
}

// CredentialSource builds region-scoped AWS configs.
type CredentialSource interface {
	Ambient(region string) aws.Config
	Delegated(ctx context.Context, roleARN, region string) (aws.Config, error)
}

// Request describes which scopes a run should cover.
type Request struct {
	Mode     model.ScopeMode
	RoleARNs []string
}

type resolver struct {
	directory organizations.Service
	roleName  string
}

// Resolver turns a Request into the ordered list of scopes to scan.
type Resolver interface {
	Resolve(ctx context.Context, req Request) ([]model.ScanScope, error)
}
