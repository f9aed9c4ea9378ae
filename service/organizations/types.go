package organizations

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/organizations"
)

// OrganizationsClientAPI is the interface for the AWS Organizations client methods used by the service.
type OrganizationsClientAPI interface {
	ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error)
}

type service struct {
	client OrganizationsClientAPI
}

// Account is one member account of the organization.
type Account struct {
	ID        string
	Name      string
	Status    string
	Partition string
}

// Service lists the member accounts of the caller's organization.
type Service interface {
	ListAccounts(ctx context.Context) ([]Account, error)
}
