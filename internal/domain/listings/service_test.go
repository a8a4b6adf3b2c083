package listings_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/listings"
	"github.com/sellfast/marketplace/internal/domain/listings/mock"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

var now = time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)

	repo.EXPECT().GetItem(gomock.Any(), "item").Return(&models.Item{ID: "item"}, nil)
	repo.EXPECT().GetCompany(gomock.Any(), "co").Return(&models.Company{ID: "co"}, nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *models.Listing) error {
			assert.Equal(t, models.ListingActive, l.Status)
			require.Len(t, l.Specifications, 2)
			assert.Equal(t, "RAM", l.Specifications[0].Name)
			assert.Equal(t, 1, l.Specifications[1].Position)
			assert.Equal(t, l.ID, l.Specifications[1].ListingID)
			return nil
		})

	s := listings.NewService(repo, nil).WithClock(func() time.Time { return now })
	got, err := s.Create(context.Background(), "seller", listings.CreateInput{
		ItemID:    "item",
		CompanyID: "co",
		Title:     "  Pixel 7 128GB ",
		Price:     300,
		Specifications: []listings.SpecInput{
			{Name: "RAM", Value: "8 GB"},
			{Name: "Storage", Value: "128 GB"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pixel 7 128GB", got.Title)
	assert.Equal(t, "seller", got.SellerID)
	assert.Equal(t, now, got.CreatedAt)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    listings.CreateInput
		setup func(repo *mock.MockRepository)
	}{
		{name: "No title", in: listings.CreateInput{ItemID: "i", CompanyID: "c", Price: 1}, setup: func(*mock.MockRepository) {}},
		{name: "No price", in: listings.CreateInput{ItemID: "i", CompanyID: "c", Title: "x"}, setup: func(*mock.MockRepository) {}},
		{name: "No item", in: listings.CreateInput{CompanyID: "c", Title: "x", Price: 1}, setup: func(*mock.MockRepository) {}},
		{
			name: "Unknown company",
			in:   listings.CreateInput{ItemID: "i", CompanyID: "c", Title: "x", Price: 1},
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().GetItem(gomock.Any(), "i").Return(&models.Item{ID: "i"}, nil).AnyTimes()
				repo.EXPECT().GetCompany(gomock.Any(), "c").Return(nil, apperr.NotFound("company not found"))
			},
		},
		{
			name: "Blank specification name",
			in: listings.CreateInput{ItemID: "i", CompanyID: "c", Title: "x", Price: 1,
				Specifications: []listings.SpecInput{{Name: " ", Value: "v"}}},
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().GetItem(gomock.Any(), "i").Return(&models.Item{ID: "i"}, nil)
				repo.EXPECT().GetCompany(gomock.Any(), "c").Return(&models.Company{ID: "c"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			tt.setup(repo)

			_, err := listings.NewService(repo, nil).Create(context.Background(), "seller", tt.in)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err), "error: %v", err)
		})
	}
}

func TestService_Get(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	listing := &models.Listing{ID: "L", ItemID: "item", CompanyID: "co"}

	repo.EXPECT().GetByID(gomock.Any(), "L").Return(listing, nil)
	repo.EXPECT().GetItem(gomock.Any(), "item").Return(&models.Item{ID: "item", Name: "Pixel 7"}, nil)
	repo.EXPECT().GetCompany(gomock.Any(), "co").Return(&models.Company{ID: "co", Name: "Google"}, nil)
	repo.EXPECT().CountBids(gomock.Any(), "L").Return(3, nil)

	got, err := listings.NewService(repo, nil).Get(context.Background(), "L")
	require.NoError(t, err)
	assert.Same(t, listing, got.Listing)
	assert.Equal(t, "Pixel 7", got.Item.Name)
	assert.Equal(t, "Google", got.Company.Name)
	assert.Equal(t, 3, got.BidCount)
}

func TestService_Search(t *testing.T) {
	active := []*models.Listing{
		{ID: "1", Title: "iPhone 13 Pro"},
		{ID: "2", Title: "Pixel 7"},
		{ID: "3", Title: "Pixel 6a"},
		{ID: "4", Title: "Galaxy S22"},
	}

	tests := []struct {
		name    string
		query   string
		limit   int
		wantIDs []string
	}{
		{name: "Empty query returns newest", query: "", limit: 2, wantIDs: []string{"1", "2"}},
		{name: "Fuzzy match", query: "pixl", limit: 10, wantIDs: []string{"2", "3"}},
		{name: "Case insensitive", query: "GALAXY", limit: 10, wantIDs: []string{"4"}},
		{name: "No match", query: "zzz", limit: 10, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			repo.EXPECT().ListActive(gomock.Any(), 500).Return(active, nil)

			got, err := listings.NewService(repo, nil).Search(context.Background(), tt.query, tt.limit)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestService_UploadImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	store := mock.NewMockImageStore(ctrl)

	repo.EXPECT().GetByID(gomock.Any(), "L").Return(&models.Listing{ID: "L", SellerID: "seller"}, nil)
	store.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), int64(4), "image/png").
		DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "L/"))
			assert.True(t, strings.HasSuffix(key, ".png"))
			return "https://cdn.example.com/listings/" + key, nil
		})
	repo.EXPECT().AddImage(gomock.Any(), "L", gomock.Any(), now).Return(nil)

	s := listings.NewService(repo, store).WithClock(func() time.Time { return now })
	got, err := s.UploadImage(context.Background(), "L", "seller", listings.ImageUpload{
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	})
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
}

func TestService_UploadImage_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		img      listings.ImageUpload
		wantKind apperr.Kind
	}{
		{"Not the seller", "buyer", listings.ImageUpload{ContentType: "image/png", Size: 1}, apperr.KindForbidden},
		{"Wrong type", "seller", listings.ImageUpload{ContentType: "application/pdf", Size: 1}, apperr.KindBadRequest},
		{"Too large", "seller", listings.ImageUpload{ContentType: "image/jpeg", Size: listings.MaxImageSize + 1}, apperr.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockRepository(ctrl)
			repo.EXPECT().GetByID(gomock.Any(), "L").Return(&models.Listing{ID: "L", SellerID: "seller"}, nil)

			s := listings.NewService(repo, mock.NewMockImageStore(ctrl))
			_, err := s.UploadImage(context.Background(), "L", tt.caller, tt.img)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestService_UploadImage_Disabled(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	_, err := listings.NewService(repo, nil).UploadImage(context.Background(), "L", "seller", listings.ImageUpload{})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}
