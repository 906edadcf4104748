package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/platform/messaging/producers"
	"github.com/hisab-backoffice/internal/posting_processor/service"
)

// PostingEventHandler handles incoming posting request messages from Kafka
type PostingEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewPostingEventHandler creates a new handler
func NewPostingEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *PostingEventHandler {
	return &PostingEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *PostingEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.PostingRequest
	if err := json.Unmarshal(value, &request); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal posting request from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	// Add correlation ID to logger
	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received posting request for processing",
		"entry_id", request.EntryID.String(),
		"company_id", request.CompanyID.String(),
		"account_id", request.AccountID.String(),
	)

	if err := h.processingService.ProcessPosting(ctx, &request); err != nil {
		logger.Error("Failed to process posting request",
			"entry_id", request.EntryID.String(),
			"account_id", request.AccountID.String(),
			"error", err,
		)
		return fmt.Errorf("processing posting %s failed: %w", request.EntryID.String(), err)
	}

	logger.Info("Successfully processed posting request", "entry_id", request.EntryID.String())
	return nil // Success, commit offset
}
