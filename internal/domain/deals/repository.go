package deals

import (
	"context"
	"time"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Deal, error)
	// Complete sets the deal COMPLETED with the given outcome and returns the stored row.
	Complete(ctx context.Context, id string, isSuccess bool, at time.Time) (*models.Deal, error)
}
