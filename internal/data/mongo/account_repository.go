// Package mongo provides MongoDB implementations of the chart-of-accounts,
// cost-center and journal repositories. Money amounts are stored as float64
// in the documents (the managed store the back office writes them with) and
// converted to decimals at the boundary.
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

	"github.com/hisab-backoffice/internal/domain/account"
)

const (
	// AccountsCollectionName is the name of the accounts collection
	AccountsCollectionName = "accounts"
)

// AccountRepository implements the account.Repository interface for MongoDB
type AccountRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAccountRepository creates a new MongoDB account repository
func NewAccountRepository(logger *slog.Logger, db *mongo.Database) account.Repository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// accountDoc is the stored shape of an account
type accountDoc struct {
	ID             uuid.UUID `bson:"account_id"`
	CompanyID      uuid.UUID `bson:"company_id"`
	Code           string    `bson:"code"`
	Name           string    `bson:"name"`
	TypeLabel      string    `bson:"type_label"`
	OpeningBalance float64   `bson:"opening_balance"`
	Nature         string    `bson:"nature"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *account.Account {
	return &account.Account{
		ID:             d.ID,
		CompanyID:      d.CompanyID,
		Code:           d.Code,
		Name:           d.Name,
		TypeLabel:      d.TypeLabel,
		OpeningBalance: decimal.NewFromFloat(d.OpeningBalance),
		Nature:         account.BalanceNature(d.Nature),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ListByCompany retrieves the full chart of accounts for a company,
// sorted by account code for deterministic iteration.
func (r *AccountRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*account.Account, error) {
	collection := r.db.Collection(AccountsCollectionName)

	filter := bson.M{"company_id": companyID}
	opts := options.Find().SetSort(bson.M{"code": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list accounts",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode accounts",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	accounts := make([]*account.Account, 0, len(docs))
	for i := range docs {
		accounts = append(accounts, docs[i].toDomain())
	}

	return accounts, nil
}

// GetByID retrieves a single account. Returns ErrAccountNotFound if absent.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	collection := r.db.Collection(AccountsCollectionName)

	filter := bson.M{"account_id": id}
	var doc accountDoc
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account",
			"account_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return doc.toDomain(), nil
}
