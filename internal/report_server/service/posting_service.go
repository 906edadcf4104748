package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/platform/messaging/producers"
)

// PostingServiceImpl implements the PostingService interface
type PostingServiceImpl struct {
	journalRepo journal.Repository
	producer    producers.MessagePublisher
	logger      *slog.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(logger *slog.Logger, journalRepo journal.Repository, producer producers.MessagePublisher) PostingService {
	return &PostingServiceImpl{
		journalRepo: journalRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitEntry validates a posting request and publishes it for async
// processing. The entry id doubles as the Kafka message key so redeliveries
// of the same request land on the same partition.
func (s *PostingServiceImpl) SubmitEntry(ctx context.Context, request *shared.PostingRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	key := request.EntryID.String()
	if err := s.producer.Publish(ctx, key, request); err != nil {
		s.logger.Error("Failed to publish posting request",
			"entry_id", key,
			"company_id", request.CompanyID.String(),
			"account_id", request.AccountID.String(),
			"error", err,
		)
		return err
	}

	s.logger.Info("Posting request published",
		"entry_id", key,
		"company_id", request.CompanyID.String(),
		"source_type", string(request.SourceType),
	)
	return nil
}

// GetEntryByID retrieves a posted journal entry. Returns nil if not found
func (s *PostingServiceImpl) GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			s.logger.Info("Journal entry not found", "entry_id", id.String())
			return nil, nil
		}
		s.logger.Error("Failed to get journal entry", "entry_id", id.String(), "error", err)
		return nil, err
	}
	return entry, nil
}
