// Package organizations enumerates the member accounts of an AWS Organization.
package organizations

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
)

// NewService creates a new Organizations service.
func NewService(cfg aws.Config) Service {
	return &service{
		client: organizations.NewFromConfig(cfg),
	}
}

// NewServiceWithClient creates a new Organizations service with a provided client (for testing).
func NewServiceWithClient(client OrganizationsClientAPI) Service {
	return &service{
		client: client,
	}
}

// ListAccounts pages through every member account. Any page failure aborts
// the listing.
func (s *service) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account

	paginator := organizations.NewListAccountsPaginator(s.client, &organizations.ListAccountsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list organization accounts: %w", err)
		}

		for _, a := range page.Accounts {
			id := aws.ToString(a.Id)
			if id == "" {
				continue
			}
			account := Account{
				ID:        id,
				Name:      aws.ToString(a.Name),
				Status:    string(a.Status),
				Partition: "aws",
			}
			if parsed, err := arn.Parse(aws.ToString(a.Arn)); err == nil {
				account.Partition = parsed.Partition
			}
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}
