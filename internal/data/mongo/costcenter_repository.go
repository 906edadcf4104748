package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hisab-backoffice/internal/domain/costcenter"
)

const (
	// CostCentersCollectionName is the name of the cost centers collection
	CostCentersCollectionName = "cost_centers"
)

// CostCenterRepository implements the costcenter.Repository interface for MongoDB
type CostCenterRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewCostCenterRepository creates a new MongoDB cost center repository
func NewCostCenterRepository(logger *slog.Logger, db *mongo.Database) costcenter.Repository {
	return &CostCenterRepository{
		db:     db,
		logger: logger,
	}
}

type costCenterDoc struct {
	ID        uuid.UUID `bson:"cost_center_id"`
	CompanyID uuid.UUID `bson:"company_id"`
	Code      string    `bson:"code"`
	Name      string    `bson:"name"`
}

// ListByCompany retrieves all cost centers for a company, sorted by code
func (r *CostCenterRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*costcenter.CostCenter, error) {
	collection := r.db.Collection(CostCentersCollectionName)

	filter := bson.M{"company_id": companyID}
	opts := options.Find().SetSort(bson.M{"code": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list cost centers",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []costCenterDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode cost centers",
			"company_id", companyID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode cost centers: %w", err)
	}

	centers := make([]*costcenter.CostCenter, 0, len(docs))
	for _, d := range docs {
		centers = append(centers, &costcenter.CostCenter{
			ID:        d.ID,
			CompanyID: d.CompanyID,
			Code:      d.Code,
			Name:      d.Name,
		})
	}

	return centers, nil
}
