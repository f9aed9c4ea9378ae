package organizations

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrgClient struct {
	pages []*organizations.ListAccountsOutput
	err   error
	calls int
}

func (m *mockOrgClient) ListAccounts(_ context.Context, params *organizations.ListAccountsInput, _ ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	page := m.pages[m.calls]
	m.calls++
	return page, nil
}

func TestListAccountsPaginates(t *testing.T) {
	client := &mockOrgClient{pages: []*organizations.ListAccountsOutput{
		{
			Accounts: []types.Account{{
				Id:     aws.String("111111111111"),
				Name:   aws.String("prod"),
				Arn:    aws.String("arn:aws-cn:organizations::999999999999:account/o-abc/111111111111"),
				Status: types.AccountStatusActive,
			}},
			NextToken: aws.String("next"),
		},
		{
			Accounts: []types.Account{{Id: aws.String("222222222222")}, {Name: aws.String("no-id")}},
		},
	}}

	accounts, err := NewServiceWithClient(client).ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "111111111111", accounts[0].ID)
	assert.Equal(t, "aws-cn", accounts[0].Partition)
	assert.Equal(t, "ACTIVE", accounts[0].Status)
	assert.Equal(t, "aws", accounts[1].Partition)
}

func TestListAccountsFailure(t *testing.T) {
	_, err := NewServiceWithClient(&mockOrgClient{err: errors.New("AWSOrganizationsNotInUseException")}).ListAccounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list organization accounts")
}
