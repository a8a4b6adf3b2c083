package listings

import (
	"context"
	"io"
	"time"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type Repository interface {
	// Create stores the listing together with its specifications.
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	ListActive(ctx context.Context, limit int) ([]*models.Listing, error)
	CountBids(ctx context.Context, listingID string) (int, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	AddImage(ctx context.Context, listingID, url string, at time.Time) error
}

// ImageStore keeps uploaded listing photos and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
