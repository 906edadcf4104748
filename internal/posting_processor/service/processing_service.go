package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/outbox"
	"github.com/hisab-backoffice/internal/domain/shared"
)

type ProcessingServiceImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
	outboxRepo  outbox.Repository
	logger      *slog.Logger
}

func NewProcessingService(
	logger *slog.Logger,
	accountRepo account.Repository,
	journalRepo journal.Repository,
	outboxRepo outbox.Repository,
) ProcessingService {
	return &ProcessingServiceImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
	}
}

// ProcessPosting handles the core logic for posting a journal entry.
// A business-invalid request is acknowledged and dropped after logging;
// infrastructure errors propagate so the message is redelivered.
func (s *ProcessingServiceImpl) ProcessPosting(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing posting request",
		"entry_id", request.EntryID.String(),
		"company_id", request.CompanyID.String(),
		"account_id", request.AccountID.String(),
	)

	// 1. Validate the request
	if err := request.Validate(); err != nil {
		logger.Warn("Posting request validation failed, dropping",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return nil // acknowledge, a retry cannot fix a bad request
	}

	// 2. The account must exist in the company's chart
	acc, err := s.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		var notFound account.ErrAccountNotFound
		if errors.As(err, &notFound) {
			logger.Warn("Posting references unknown account, dropping",
				"entry_id", request.EntryID.String(),
				"account_id", request.AccountID.String(),
			)
			return nil
		}
		return fmt.Errorf("failed to resolve account %s: %w", request.AccountID.String(), err)
	}
	if acc.CompanyID != request.CompanyID {
		logger.Warn("Posting references account of another company, dropping",
			"entry_id", request.EntryID.String(),
			"account_id", request.AccountID.String(),
		)
		return nil
	}

	// 3. Insert the journal entry; a duplicate means this message was
	// already processed once and only the outbox write may be missing.
	entry := journal.NewEntry(request)
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		if !errors.Is(err, journal.ErrDuplicateEntry{}) {
			return fmt.Errorf("failed to create journal entry %s: %w", entry.ID.String(), err)
		}
		logger.Info("Journal entry already posted", "entry_id", entry.ID.String())
	}

	// 4. Record the posted-entry event, once per entry
	if _, err := s.outboxRepo.GetByEntryID(ctx, entry.ID); err == nil {
		return nil
	} else if !errors.Is(err, outbox.ErrMessageNotFound{}) {
		return fmt.Errorf("failed to check outbox for entry %s: %w", entry.ID.String(), err)
	}

	message, err := outbox.NewMessage(entry)
	if err != nil {
		return fmt.Errorf("failed to build outbox message for entry %s: %w", entry.ID.String(), err)
	}
	if err := s.outboxRepo.Create(ctx, message); err != nil {
		if errors.Is(err, outbox.ErrDuplicateMessage{}) {
			return nil
		}
		return fmt.Errorf("failed to create outbox message for entry %s: %w", entry.ID.String(), err)
	}

	logger.Info("Posting request processed", "entry_id", entry.ID.String())
	return nil
}
