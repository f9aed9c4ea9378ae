package model

// ScopeMode selects how account scopes are produced for a run.
type ScopeMode string

const (
	// ScopeCurrent scans with the caller's own credentials only.
	ScopeCurrent ScopeMode = "current"
	// ScopeExplicit scans every role ARN supplied by the user.
	ScopeExplicit ScopeMode = "explicit"
	// ScopeOrganization discovers one role per member account.
	ScopeOrganization ScopeMode = "organization"
)

// DefaultMaxParallel bounds concurrent remote calls when no limit is
// configured.
const DefaultMaxParallel = 6

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputText  = "text"
)

// Config is the validated, merged configuration of one run.
type Config struct {
	Command     string
	Profile     string
	Region      string
	Regions     []string
	AllRegions  bool
	VpcIDs      []string
	RoleARNs    []string
	ScopeMode   ScopeMode
	OrgRoleName string
	SessionName string
	MaxParallel int
	Detail      bool
	Output      string
	LogFile     string
	LogLevel    string
}

// ListResources reports whether resource scanners should run for each VPC.
// Without explicit VPC IDs the report is a summary unless detail is requested.
func (c Config) ListResources() bool {
	return c.Detail || len(c.VpcIDs) > 0
}

// ScanScope is one account boundary to query. An empty RoleARN means the
// caller's own identity.
type ScanScope struct {
	RoleARN   string `json:"role_arn,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

// Delegated reports whether the scope names a role to assume.
func (s ScanScope) Delegated() bool {
	return s.RoleARN != ""
}
