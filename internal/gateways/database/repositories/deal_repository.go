package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type DealRepository struct {
	db bun.IDB
}

func NewDealRepository(db bun.IDB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*models.Deal, error) {
	deal := new(models.Deal)
	err := r.db.NewSelect().
		Model(deal).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "deal")
	}
	return deal, nil
}

// Complete overwrites the outcome whatever the current status is.
func (r *DealRepository) Complete(ctx context.Context, id string, isSuccess bool, at time.Time) (*models.Deal, error) {
	deal := new(models.Deal)
	result, err := r.db.NewUpdate().
		Model(deal).
		Set("status = ?", models.DealCompleted).
		Set("is_success = ?", isSuccess).
		Set("completed_at = ?", at).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to complete deal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFound("deal not found")
	}
	return deal, nil
}
