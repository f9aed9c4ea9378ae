package model

import (
	"cmp"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/btree"
)

// ResourceType tags the family member a ResourceRecord was found as.
type ResourceType string

// Resource types reported inside a VPC.
const (
	ResourceComputeInstance      ResourceType = "ec2.instance"
	ResourceNetworkInterface     ResourceType = "ec2.eni"
	ResourceNATGateway           ResourceType = "ec2.nat-gateway"
	ResourceFlowLog              ResourceType = "ec2.flow-log"
	ResourceLoadBalancer         ResourceType = "elbv2.load-balancer"
	ResourceTargetGroup          ResourceType = "elbv2.target-group"
	ResourceDatabaseInstance     ResourceType = "rds.instance"
	ResourceDatabaseCluster      ResourceType = "rds.cluster"
	ResourceDocumentStoreCluster ResourceType = "docdb.cluster"
)

// ResourceRecord is one resource found inside a VPC.
type ResourceRecord struct {
	ID   string       `json:"id"`
	Type ResourceType `json:"type"`
	Name string       `json:"name"`
	// Unverified is set for records whose VPC membership the API cannot
	// confirm (database and document-store clusters).
	Unverified bool `json:"unverified,omitempty"`
}

// NetworkKey orders the aggregate: region first, then VPC ID.
type NetworkKey struct {
	Region string `json:"region"`
	VpcID  string `json:"vpc_id"`
}

// Less reports whether k sorts before o.
func (k NetworkKey) Less(o NetworkKey) bool {
	if k.Region != o.Region {
		return k.Region < o.Region
	}
	return k.VpcID < o.VpcID
}

// NetworkRecord summarizes one discovered VPC.
type NetworkRecord struct {
	Region    string           `json:"region"`
	VpcID     string           `json:"vpc_id"`
	Name      string           `json:"name,omitempty"`
	AccountID string           `json:"account_id,omitempty"`
	RoleARN   string           `json:"role_arn,omitempty"`
	CIDRs     []string         `json:"cidrs"`
	Public    bool             `json:"public"`
	Peers     []string         `json:"peers"`
	Resources []ResourceRecord `json:"resources"`
}

// Key returns the aggregate key of the record.
func (n NetworkRecord) Key() NetworkKey {
	return NetworkKey{Region: n.Region, VpcID: n.VpcID}
}

// Peered reports whether the VPC has at least one active peering.
func (n NetworkRecord) Peered() bool {
	return len(n.Peers) > 0
}

// Visibility returns "public" or "private".
func (n NetworkRecord) Visibility() string {
	if n.Public {
		return "public"
	}
	return "private"
}

// PeeringStatus returns "peered" or "unpeered".
func (n NetworkRecord) PeeringStatus() string {
	if n.Peered() {
		return "peered"
	}
	return "unpeered"
}

// SortedUnique returns a sorted copy of in without duplicates or empty strings.
func SortedUnique(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SortResources orders records by type, then ID, then name, and drops
// exact duplicates.
func SortResources(in []ResourceRecord) []ResourceRecord {
	out := append(make([]ResourceRecord, 0, len(in)), in...)
	slices.SortFunc(out, func(a, b ResourceRecord) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return slices.CompactFunc(out, func(a, b ResourceRecord) bool {
		return a.Type == b.Type && a.ID == b.ID && a.Name == b.Name
	})
}

// ScanResult is the ordered, duplicate-free aggregate of one VPC scan run.
// It is safe for concurrent Merge calls.
type ScanResult struct {
	mu             sync.Mutex
	tree           *btree.BTreeG[*NetworkRecord]
	RegionsScanned int
}

// NewScanResult creates an empty aggregate.
func NewScanResult() *ScanResult {
	return &ScanResult{
		tree: btree.NewG[*NetworkRecord](16, func(a, b *NetworkRecord) bool {
			return a.Key().Less(b.Key())
		}),
	}
}

// Merge inserts rec, normalizing its sets. When a record with the same key
// already exists the two are unioned.
func (r *ScanResult) Merge(rec NetworkRecord) {
	rec.CIDRs = SortedUnique(rec.CIDRs)
	rec.Peers = SortedUnique(rec.Peers)
	rec.Resources = SortResources(rec.Resources)

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tree.Get(&rec)
	if !ok {
		r.tree.ReplaceOrInsert(&rec)
		return
	}
	if existing.Name == "" {
		existing.Name = rec.Name
	}
	if existing.AccountID == "" {
		existing.AccountID = rec.AccountID
	}
	existing.Public = existing.Public || rec.Public
	existing.CIDRs = SortedUnique(append(existing.CIDRs, rec.CIDRs...))
	existing.Peers = SortedUnique(append(existing.Peers, rec.Peers...))
	existing.Resources = SortResources(append(existing.Resources, rec.Resources...))
}

// Len returns the number of VPCs in the aggregate.
func (r *ScanResult) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Len()
}

// Get looks up a VPC by key.
func (r *ScanResult) Get(region, vpcID string) (NetworkRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tree.Get(&NetworkRecord{Region: region, VpcID: vpcID})
	if !ok {
		return NetworkRecord{}, false
	}
	return *rec, true
}

// Networks returns copies of every record in (region, vpc-id) order.
func (r *ScanResult) Networks() []NetworkRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NetworkRecord, 0, r.tree.Len())
	r.tree.Ascend(func(rec *NetworkRecord) bool {
		out = append(out, *rec)
		return true
	})
	return out
}

// MarshalJSON encodes the aggregate as an ordered list.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RegionsScanned int             `json:"regions_scanned"`
		VPCs           []NetworkRecord `json:"vpcs"`
	}{
		RegionsScanned: r.RegionsScanned,
		VPCs:           r.Networks(),
	})
}

// DBInstanceRecord is one row of the flat database instance listing.
type DBInstanceRecord struct {
	Region     string `json:"region"`
	RoleARN    string `json:"role_arn,omitempty"`
	AccountID  string `json:"account_id,omitempty"`
	InstanceID string `json:"instance_id"`
	Engine     string `json:"engine,omitempty"`
	Status     string `json:"status,omitempty"`
}
