package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
)

const (
	// JournalCollectionName is the name of the journal entries collection
	JournalCollectionName = "journal_entries"
)

// JournalRepository implements the journal.Repository interface for MongoDB
type JournalRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewJournalRepository creates a new MongoDB journal repository
func NewJournalRepository(logger *slog.Logger, db *mongo.Database) journal.Repository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

type journalEntryDoc struct {
	ID            uuid.UUID  `bson:"entry_id"`
	CompanyID     uuid.UUID  `bson:"company_id"`
	AccountID     uuid.UUID  `bson:"account_id"`
	CostCenterID  *uuid.UUID `bson:"cost_center_id,omitempty"`
	Debit         float64    `bson:"debit"`
	Credit        float64    `bson:"credit"`
	EntryDate     time.Time  `bson:"entry_date"`
	SourceType    string     `bson:"source_type"`
	Description   string     `bson:"description,omitempty"`
	CorrelationID string     `bson:"correlation_id,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
}

func toDoc(e *journal.Entry) *journalEntryDoc {
	return &journalEntryDoc{
		ID:            e.ID,
		CompanyID:     e.CompanyID,
		AccountID:     e.AccountID,
		CostCenterID:  e.CostCenterID,
		Debit:         e.Debit.InexactFloat64(),
		Credit:        e.Credit.InexactFloat64(),
		EntryDate:     e.EntryDate,
		SourceType:    string(e.SourceType),
		Description:   e.Description,
		CorrelationID: e.CorrelationID,
		CreatedAt:     e.CreatedAt,
	}
}

func (d *journalEntryDoc) toDomain() *journal.Entry {
	return &journal.Entry{
		ID:            d.ID,
		CompanyID:     d.CompanyID,
		AccountID:     d.AccountID,
		CostCenterID:  d.CostCenterID,
		Debit:         decimal.NewFromFloat(d.Debit),
		Credit:        decimal.NewFromFloat(d.Credit),
		EntryDate:     d.EntryDate,
		SourceType:    shared.SourceType(d.SourceType),
		Description:   d.Description,
		CorrelationID: d.CorrelationID,
		CreatedAt:     d.CreatedAt,
	}
}

// Create stores a new journal entry after checking for duplicates.
// Returns ErrDuplicateEntry if an entry with the same id exists, which
// makes Kafka redelivery of posting requests idempotent.
func (r *JournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	collection := r.db.Collection(JournalCollectionName)

	existing, err := r.GetByID(ctx, entry.ID)
	if err != nil && !errors.Is(err, journal.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing journal entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing journal entry: %w", err)
	}

	if existing != nil {
		return journal.ErrDuplicateEntry{EntryID: entry.ID}
	}

	_, err = collection.InsertOne(ctx, toDoc(entry))
	if err != nil {
		r.logger.Error("Failed to create journal entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetByID retrieves a journal entry by its id.
// Returns ErrEntryNotFound if no entry exists.
func (r *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	collection := r.db.Collection(JournalCollectionName)

	filter := bson.M{"entry_id": id}
	var doc journalEntryDoc
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, journal.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get journal entry",
			"entry_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return doc.toDomain(), nil
}

// ListByCompanyAndRange retrieves a company's entries dated within
// [from, to], inclusive on both ends. Results are sorted by entry date then
// entry id so identical requests iterate in the same order.
func (r *JournalRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*journal.Entry, error) {
	collection := r.db.Collection(JournalCollectionName)

	filter := bson.M{
		"company_id": companyID,
		"entry_date": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "entry_date", Value: 1}, {Key: "entry_id", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list journal entries",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []journalEntryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode journal entries",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}

	entries := make([]*journal.Entry, 0, len(docs))
	for i := range docs {
		entries = append(entries, docs[i].toDomain())
	}

	return entries, nil
}

// CountByCompany counts all journal entries posted for a company
func (r *JournalRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	collection := r.db.Collection(JournalCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"company_id": companyID})
	if err != nil {
		r.logger.Error("Failed to count journal entries",
			"company_id", companyID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	return count, nil
}
