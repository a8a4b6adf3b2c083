package listings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

const (
	MaxImageSize   = 5 << 20
	searchPoolSize = 500
	defaultLimit   = 20
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type SpecInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CreateInput struct {
	ItemID         string      `json:"item_id"`
	CompanyID      string      `json:"company_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Price          int64       `json:"price"`
	Specifications []SpecInput `json:"specifications"`
}

// Detail is a listing with the records it references.
type Detail struct {
	*models.Listing
	Item     *models.Item    `json:"item"`
	Company  *models.Company `json:"company"`
	BidCount int             `json:"bid_count"`
}

type Service struct {
	repo   Repository
	images ImageStore
	now    func() time.Time
}

// NewService builds the listing service. images may be nil, which disables uploads.
func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (*models.Listing, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, apperr.BadRequest("title is required")
	}
	if in.Price <= 0 {
		return nil, apperr.BadRequest("price must be positive")
	}
	if in.ItemID == "" || in.CompanyID == "" {
		return nil, apperr.BadRequest("item_id and company_id are required")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.repo.GetItem(gctx, in.ItemID)
		return asBadReference(err, "unknown item")
	})
	g.Go(func() error {
		_, err := s.repo.GetCompany(gctx, in.CompanyID)
		return asBadReference(err, "unknown company")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	listing := &models.Listing{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		ItemID:      in.ItemID,
		CompanyID:   in.CompanyID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Status:      models.ListingActive,
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, spec := range in.Specifications {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, apperr.BadRequest("specification name is required").WithDetail("position", fmt.Sprint(i))
		}
		listing.Specifications = append(listing.Specifications, &models.ListingSpecification{
			ID:        uuid.NewString(),
			ListingID: listing.ID,
			Name:      name,
			Value:     strings.TrimSpace(spec.Value),
			Position:  i,
		})
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	slog.Info("Listing created",
		slog.String("listing_id", listing.ID),
		slog.String("seller_id", sellerID),
		slog.Int64("price", listing.Price))
	return listing, nil
}

func asBadReference(err error, msg string) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.BadRequest(msg)
	}
	return err
}

// Get loads a listing and, concurrently, its item, company and bid count.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Listing: listing}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		item, err := s.repo.GetItem(gctx, listing.ItemID)
		detail.Item = item
		return err
	})
	g.Go(func() error {
		company, err := s.repo.GetCompany(gctx, listing.CompanyID)
		detail.Company = company
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountBids(gctx, listing.ID)
		detail.BidCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	return detail, nil
}

type searchItems []*models.Listing

func (items searchItems) Len() int { return len(items) }

func (items searchItems) String(i int) string { return strings.ToLower(items[i].Title) }

// Search returns active listings whose title fuzzily matches query, best match first.
// An empty query returns the newest listings.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.Listing, error) {
	if limit < 1 || limit > searchPoolSize {
		limit = defaultLimit
	}

	active, err := s.repo.ListActive(ctx, searchPoolSize)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if len(active) > limit {
			active = active[:limit]
		}
		return active, nil
	}

	matches := fuzzy.FindFrom(query, searchItems(active))
	results := make([]*models.Listing, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(results) == limit {
			break
		}
		results = append(results, active[m.Index])
	}
	return results, nil
}

type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadImage stores a photo for the listing and appends its URL. Only the seller may upload.
func (s *Service) UploadImage(ctx context.Context, listingID, callerID string, img ImageUpload) (*models.Listing, error) {
	if s.images == nil {
		return nil, apperr.InvalidState("image uploads are disabled")
	}

	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != callerID {
		return nil, apperr.Forbidden("only the seller can add images")
	}

	ext, ok := imageExtensions[img.ContentType]
	if !ok {
		return nil, apperr.BadRequest("unsupported image type").WithDetail("content_type", img.ContentType)
	}
	if img.Size <= 0 || img.Size > MaxImageSize {
		return nil, apperr.BadRequest("image must be between 1 byte and 5 MB")
	}

	key := fmt.Sprintf("%s/%s%s", listing.ID, uuid.NewString(), ext)
	url, err := s.images.Put(ctx, key, img.Body, img.Size, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	now := s.now().UTC()
	if err := s.repo.AddImage(ctx, listing.ID, url, now); err != nil {
		return nil, err
	}
	listing.Images = append(listing.Images, url)
	listing.UpdatedAt = now

	slog.Info("Listing image uploaded",
		slog.String("listing_id", listing.ID),
		slog.String("url", url))
	return listing, nil
}
