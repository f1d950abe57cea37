package repository

import (
	"context"

	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Profile Operations
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)

	// Cost Operations
	GetCostAndUsageByGroup(ctx context.Context, profile string, period entity.Period, opts entity.FetchOptions) ([]entity.TimeBucket, error)
}
