package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type ListingRepository struct {
	db *bun.DB
}

func NewListingRepository(db *bun.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(listing).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		if len(listing.Specifications) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&listing.Specifications).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create listing specifications: %w", err)
		}
		return nil
	})
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Relation("Specifications", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).
		Where("l.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "listing")
	}
	return listing, nil
}

func (r *ListingRepository) ListActive(ctx context.Context, limit int) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingActive).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) CountBids(ctx context.Context, listingID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Bid)(nil)).
		Where("listing_id = ?", listingID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", err)
	}
	return count, nil
}

func (r *ListingRepository) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Relation("Category").
		Where("it.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "item")
	}
	return item, nil
}

func (r *ListingRepository) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company := new(models.Company)
	err := r.db.NewSelect().
		Model(company).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "company")
	}
	return company, nil
}

func (r *ListingRepository) AddImage(ctx context.Context, listingID, url string, at time.Time) error {
	result, err := r.db.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("images = array_append(images, ?)", url).
		Set("updated_at = ?", at).
		Where("id = ?", listingID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add listing image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("listing not found")
	}
	return nil
}
