package outbox_poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/outbox"
	"github.com/hisab-backoffice/internal/domain/shared"
)

// MockOutboxRepo for testing
type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) WithTx(tx pgx.Tx) outbox.Repository {
	args := m.Called(tx)
	return args.Get(0).(outbox.Repository)
}

// MockMessagePublisher for testing
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func pendingMessage(t *testing.T, id int64) (*outbox.Message, *journal.Entry) {
	t.Helper()
	entry := &journal.Entry{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		AccountID:     uuid.New(),
		Debit:         decimal.RequireFromString("300.00"),
		Credit:        decimal.Zero,
		EntryDate:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		SourceType:    shared.SourceExpense,
		CorrelationID: "corr1",
		CreatedAt:     time.Now().UTC(),
	}
	message, err := outbox.NewMessage(entry)
	require.NoError(t, err)
	message.ID = id
	return message, entry
}

func TestEventPublisher_PublishEvent(t *testing.T) {
	logger := slog.Default()

	message, entry := pendingMessage(t, 1)

	tests := []struct {
		name          string
		message       *outbox.Message
		setupMocks    func(repo *MockOutboxRepo, producer *MockMessagePublisher)
		expectedError error
	}{
		{
			name:    "successful publish",
			message: message,
			setupMocks: func(repo *MockOutboxRepo, producer *MockMessagePublisher) {
				producer.On("Publish", mock.Anything, entry.ID.String(), mock.MatchedBy(func(payload interface{}) bool {
					published, ok := payload.(*journal.Entry)
					return ok && published.ID == entry.ID && published.Debit.Equal(entry.Debit)
				})).Return(nil).Once()

				repo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusProcessed).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "error unmarshalling payload",
			message: &outbox.Message{
				ID:        1,
				EntryID:   entry.ID,
				Status:    shared.OutboxStatusPending,
				Payload:   []byte("invalid json"),
				CreatedAt: time.Now(),
			},
			setupMocks: func(repo *MockOutboxRepo, producer *MockMessagePublisher) {
				repo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusFailedToPublish).Return(nil).Once()
			},
			expectedError: errors.New("unmarshal payload"),
		},
		{
			name:    "error publishing event",
			message: message,
			setupMocks: func(repo *MockOutboxRepo, producer *MockMessagePublisher) {
				producer.On("Publish", mock.Anything, entry.ID.String(), mock.Anything).Return(errors.New("kafka error")).Once()
			},
			expectedError: errors.New("failed to publish posted-entry event"),
		},
		{
			name:    "error updating outbox status",
			message: message,
			setupMocks: func(repo *MockOutboxRepo, producer *MockMessagePublisher) {
				producer.On("Publish", mock.Anything, entry.ID.String(), mock.Anything).Return(nil).Once()

				repo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusProcessed).Return(errors.New("db error")).Once()
			},
			expectedError: errors.New("failed to mark outbox"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOutboxRepo := &MockOutboxRepo{}
			mockProducer := &MockMessagePublisher{}
			publisher := NewEventPublisher(mockOutboxRepo, mockProducer, logger)

			tt.setupMocks(mockOutboxRepo, mockProducer)
			ctx := context.Background()

			err := publisher.PublishEvent(ctx, tt.message)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockOutboxRepo.AssertExpectations(t)
			mockProducer.AssertExpectations(t)
		})
	}
}
