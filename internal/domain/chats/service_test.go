package chats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/chats"
	"github.com/sellfast/marketplace/internal/domain/chats/mock"
	"github.com/sellfast/marketplace/internal/events"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

var now = time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

func openChat() *models.Chat {
	return &models.Chat{ID: "C", DealID: "D", BuyerID: "buyer", SellerID: "seller"}
}

type eventLog struct{ types []events.Type }

func (l *eventLog) Publish(_ context.Context, e events.Event) error {
	l.types = append(l.types, e.Type)
	return nil
}

type fixture struct {
	tx      *mock.MockTx
	repo    *mock.MockRepository
	events  *eventLog
	service *chats.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		tx:     mock.NewMockTx(ctrl),
		repo:   mock.NewMockRepository(ctrl),
		events: &eventLog{},
	}
	uow := mock.NewMockUnitOfWork(ctrl)
	uow.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, chats.Tx) error) error {
			return fn(ctx, f.tx)
		}).
		AnyTimes()

	f.service = chats.NewService(f.repo, uow, f.events).WithClock(func() time.Time { return now })
	return f
}

func TestService_PostMessage_Text(t *testing.T) {
	f := newFixture(t)
	f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(openChat(), nil)
	f.tx.EXPECT().
		InsertMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.ChatMessage) error {
			assert.Equal(t, "seller", m.SenderID)
			assert.False(t, m.IsBlocked)
			return nil
		})
	f.tx.EXPECT().TouchChat(gomock.Any(), "C", now).Return(nil)

	got, err := f.service.PostMessage(context.Background(), "C", "seller", chats.MessageInput{Text: strPtr(" still available? ")})
	require.NoError(t, err)
	assert.Equal(t, "still available?", *got.Message.Text)
	assert.False(t, got.ChatBlocked)
	assert.Empty(t, f.events.types)
}

func TestService_PostMessage_PhoneNumberBlocksChat(t *testing.T) {
	f := newFixture(t)
	chat := openChat()

	f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(chat, nil)
	f.tx.EXPECT().
		InsertMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.ChatMessage) error {
			assert.True(t, m.IsBlocked)
			assert.Equal(t, chats.MessageBlockReason, m.BlockReason)
			return nil
		})
	f.tx.EXPECT().BlockChat(gomock.Any(), "C", chats.ChatBlockReason, now).Return(nil)

	got, err := f.service.PostMessage(context.Background(), "C", "buyer", chats.MessageInput{Text: strPtr("call 5551234567")})
	require.NoError(t, err)
	assert.True(t, got.ChatBlocked)
	assert.True(t, got.Message.IsBlocked)
	assert.Equal(t, []events.Type{events.ChatBlocked}, f.events.types)

	// the stored chat is now blocked; further posts look like a missing chat
	chat.Blocked = true
	chat.BlockReason = chats.ChatBlockReason
	f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(chat, nil)

	_, err = f.service.PostMessage(context.Background(), "C", "buyer", chats.MessageInput{Text: strPtr("ok")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "chat not found", apperr.From(err).Message)
}

func TestService_PostMessage_LocationSkipsModeration(t *testing.T) {
	f := newFixture(t)
	f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(openChat(), nil)
	f.tx.EXPECT().
		InsertMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.ChatMessage) error {
			assert.True(t, m.IsLocation)
			assert.Nil(t, m.Text)
			assert.False(t, m.IsBlocked)
			return nil
		})
	f.tx.EXPECT().TouchChat(gomock.Any(), "C", now).Return(nil)

	got, err := f.service.PostMessage(context.Background(), "C", "buyer", chats.MessageInput{
		IsLocation: true,
		Latitude:   f64Ptr(55.5123456),
		Longitude:  f64Ptr(37.1234567),
	})
	require.NoError(t, err)
	assert.False(t, got.ChatBlocked)
}

func TestService_PostMessage_Inaccessible(t *testing.T) {
	blocked := openChat()
	blocked.Blocked = true

	tests := []struct {
		name   string
		sender string
		setup  func(f *fixture)
	}{
		{
			name:   "Missing chat",
			sender: "buyer",
			setup: func(f *fixture) {
				f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(nil, apperr.NotFound("chat not found"))
			},
		},
		{
			name:   "Sender outside the chat",
			sender: "stranger",
			setup: func(f *fixture) {
				f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(openChat(), nil)
			},
		},
		{
			name:   "Blocked chat",
			sender: "seller",
			setup: func(f *fixture) {
				f.tx.EXPECT().LockChat(gomock.Any(), "C").Return(blocked, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.service.PostMessage(context.Background(), "C", tt.sender, chats.MessageInput{Text: strPtr("hello")})
			require.Error(t, err)
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			assert.Equal(t, "chat not found", apperr.From(err).Message)
		})
	}
}

func TestService_PostMessage_BadPayload(t *testing.T) {
	tests := []struct {
		name string
		in   chats.MessageInput
	}{
		{"empty", chats.MessageInput{}},
		{"blank text", chats.MessageInput{Text: strPtr("   ")}},
		{"text and location", chats.MessageInput{Text: strPtr("hi"), IsLocation: true, Latitude: f64Ptr(1), Longitude: f64Ptr(1)}},
		{"coordinates on a text message", chats.MessageInput{Text: strPtr("hi"), Latitude: f64Ptr(1)}},
		{"location without longitude", chats.MessageInput{IsLocation: true, Latitude: f64Ptr(1)}},
		{"latitude out of range", chats.MessageInput{IsLocation: true, Latitude: f64Ptr(91), Longitude: f64Ptr(0)}},
		{"longitude out of range", chats.MessageInput{IsLocation: true, Latitude: f64Ptr(0), Longitude: f64Ptr(-180.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.service.PostMessage(context.Background(), "C", "buyer", tt.in)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		})
	}
}

func TestService_ListMessages(t *testing.T) {
	blocked := openChat()
	blocked.Blocked = true
	history := []*models.ChatMessage{{ID: "m1"}, {ID: "m2"}}

	f := newFixture(t)
	f.repo.EXPECT().GetByID(gomock.Any(), "C").Return(blocked, nil).Times(2)
	f.repo.EXPECT().ListMessages(gomock.Any(), "C").Return(history, nil)

	got, err := f.service.ListMessages(context.Background(), "C", "seller")
	require.NoError(t, err)
	assert.Equal(t, history, got)

	_, err = f.service.ListMessages(context.Background(), "C", "stranger")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
