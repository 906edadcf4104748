package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/report_server/middleware"
)

type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) SubmitEntry(ctx context.Context, request *shared.PostingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPostingService) GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func journalTestRouter(postingService *MockPostingService, tenant *shared.TenantContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	router := gin.New()
	router.Use(middleware.CorrelationID())
	if tenant != nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.TenantKey, *tenant)
		})
	}

	h := NewJournalHandler(logger, postingService)
	router.POST("/api/v1/journal-entries", h.Create)
	router.GET("/api/v1/journal-entries/:id", h.GetByID)
	return router
}

func postJournalEntry(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestJournalHandler_Create(t *testing.T) {
	tenant := shared.TenantContext{CompanyID: uuid.New()}
	accountID := uuid.New()

	t.Run("accepts a valid posting request", func(t *testing.T) {
		svc := new(MockPostingService)
		var captured *shared.PostingRequest
		svc.On("SubmitEntry", mock.Anything, mock.AnythingOfType("*shared.PostingRequest")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*shared.PostingRequest)
			}).
			Return(nil)

		router := journalTestRouter(svc, &tenant)
		rr := postJournalEntry(router, CreateJournalEntryRequest{
			AccountID:  accountID.String(),
			Debit:      150.0,
			EntryDate:  "2025-04-01",
			SourceType: "journal",
		})

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"PENDING"`)

		require.NotNil(t, captured)
		assert.Equal(t, tenant.CompanyID, captured.CompanyID)
		assert.Equal(t, accountID, captured.AccountID)
		assert.True(t, captured.Debit.Equal(decimal.NewFromInt(150)))
		assert.NotEqual(t, uuid.Nil, captured.EntryID)
		assert.NotEmpty(t, captured.CorrelationID)
		svc.AssertExpectations(t)
	})

	t.Run("invalid body is a bad request", func(t *testing.T) {
		svc := new(MockPostingService)
		router := journalTestRouter(svc, &tenant)

		rr := postJournalEntry(router, gin.H{"account_id": "not-a-uuid"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "SubmitEntry", mock.Anything, mock.Anything)
	})

	t.Run("invalid entry date is a bad request", func(t *testing.T) {
		svc := new(MockPostingService)
		router := journalTestRouter(svc, &tenant)

		rr := postJournalEntry(router, CreateJournalEntryRequest{
			AccountID:  accountID.String(),
			Debit:      100.0,
			EntryDate:  "04/01/2025",
			SourceType: "journal",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("validation failure from the service is a bad request", func(t *testing.T) {
		svc := new(MockPostingService)
		svc.On("SubmitEntry", mock.Anything, mock.Anything).Return(shared.ErrTwoSidedAmount)

		router := journalTestRouter(svc, &tenant)
		rr := postJournalEntry(router, CreateJournalEntryRequest{
			AccountID:  accountID.String(),
			Debit:      100.0,
			Credit:     100.0,
			EntryDate:  "2025-04-01",
			SourceType: "journal",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("publish failure is an internal error", func(t *testing.T) {
		svc := new(MockPostingService)
		svc.On("SubmitEntry", mock.Anything, mock.Anything).Return(assert.AnError)

		router := journalTestRouter(svc, &tenant)
		rr := postJournalEntry(router, CreateJournalEntryRequest{
			AccountID:  accountID.String(),
			Debit:      100.0,
			EntryDate:  "2025-04-01",
			SourceType: "journal",
		})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("missing tenant is unauthorized", func(t *testing.T) {
		svc := new(MockPostingService)
		router := journalTestRouter(svc, nil)

		rr := postJournalEntry(router, CreateJournalEntryRequest{
			AccountID:  accountID.String(),
			Debit:      100.0,
			EntryDate:  "2025-04-01",
			SourceType: "journal",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestJournalHandler_GetByID(t *testing.T) {
	tenant := shared.TenantContext{CompanyID: uuid.New()}

	t.Run("returns the entry", func(t *testing.T) {
		svc := new(MockPostingService)
		entry := &journal.Entry{
			ID:         uuid.New(),
			CompanyID:  tenant.CompanyID,
			AccountID:  uuid.New(),
			Debit:      decimal.NewFromInt(150),
			EntryDate:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			SourceType: shared.SourceJournal,
			CreatedAt:  time.Now().UTC(),
		}
		svc.On("GetEntryByID", mock.Anything, entry.ID).Return(entry, nil)

		router := journalTestRouter(svc, &tenant)
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/journal-entries/"+entry.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Data JournalEntryResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, entry.ID.String(), response.Data.EntryID)
		assert.Equal(t, 150.0, response.Data.Debit)
		assert.Equal(t, "2025-04-01", response.Data.EntryDate)
	})

	t.Run("unknown entry is not found", func(t *testing.T) {
		svc := new(MockPostingService)
		id := uuid.New()
		svc.On("GetEntryByID", mock.Anything, id).Return(nil, nil)

		router := journalTestRouter(svc, &tenant)
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/journal-entries/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		svc := new(MockPostingService)
		router := journalTestRouter(svc, &tenant)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/journal-entries/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
