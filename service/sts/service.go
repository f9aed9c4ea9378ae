// Package awssts resolves the identity behind the ambient AWS credentials.
package awssts

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return &service{
		client: sts.NewFromConfig(awsconfig),
	}
}

// NewServiceWithClient creates a new STS service with a provided client (for testing).
func NewServiceWithClient(client STSClientAPI) Service {
	return &service{
		client: client,
	}
}

func (s *service) GetCallerIdentity(ctx context.Context) (CallerIdentity, error) {
	out, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return CallerIdentity{}, fmt.Errorf("failed to get caller identity: %w", err)
	}

	id := CallerIdentity{
		AccountID: aws.ToString(out.Account),
		ARN:       aws.ToString(out.Arn),
	}
	if id.AccountID == "" {
		return CallerIdentity{}, errors.New("caller identity returned no account ID")
	}

	return id, nil
}
