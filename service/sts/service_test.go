package awssts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSTSClient struct {
	out   *sts.GetCallerIdentityOutput
	err   error
	calls int
}

func (m *mockSTSClient) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	m.calls++
	return m.out, m.err
}

func TestGetCallerIdentity(t *testing.T) {
	client := &mockSTSClient{out: &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws-us-gov:iam::123456789012:user/ops"),
	}}

	id, err := NewServiceWithClient(client).GetCallerIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456789012", id.AccountID)
	assert.Equal(t, "arn:aws-us-gov:iam::123456789012:user/ops", id.ARN)
	assert.Equal(t, 1, client.calls)
}

func TestGetCallerIdentityErrors(t *testing.T) {
	_, err := NewServiceWithClient(&mockSTSClient{err: errors.New("ExpiredToken")}).GetCallerIdentity(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ExpiredToken")

	_, err = NewServiceWithClient(&mockSTSClient{out: &sts.GetCallerIdentityOutput{}}).GetCallerIdentity(context.Background())
	require.Error(t, err)
}
