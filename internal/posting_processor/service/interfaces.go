package service

import (
	"context"

	"github.com/hisab-backoffice/internal/domain/shared"
)

// ProcessingService defines the interface for processing posting requests.
type ProcessingService interface {
	ProcessPosting(ctx context.Context, request *shared.PostingRequest) error
}
