package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	bids "github.com/sellfast/marketplace/internal/domain/bids"
	models "github.com/sellfast/marketplace/internal/gateways/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockTx is a mock of Tx interface.
type MockTx struct {
	ctrl     *gomock.Controller
	recorder *MockTxMockRecorder
	isgomock struct{}
}

// MockTxMockRecorder is the mock recorder for MockTx.
type MockTxMockRecorder struct {
	mock *MockTx
}

// NewMockTx creates a new mock instance.
func NewMockTx(ctrl *gomock.Controller) *MockTx {
	mock := &MockTx{ctrl: ctrl}
	mock.recorder = &MockTxMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTx) EXPECT() *MockTxMockRecorder {
	return m.recorder
}

// AcceptBid mocks base method.
func (m *MockTx) AcceptBid(ctx context.Context, id string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AcceptBid", ctx, id, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// AcceptBid indicates an expected call of AcceptBid.
func (mr *MockTxMockRecorder) AcceptBid(ctx, id, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AcceptBid", reflect.TypeOf((*MockTx)(nil).AcceptBid), ctx, id, at)
}

// AddBalance mocks base method.
func (m *MockTx) AddBalance(ctx context.Context, userID string, delta int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddBalance", ctx, userID, delta)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddBalance indicates an expected call of AddBalance.
func (mr *MockTxMockRecorder) AddBalance(ctx, userID, delta any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddBalance", reflect.TypeOf((*MockTx)(nil).AddBalance), ctx, userID, delta)
}

// ExpireBid mocks base method.
func (m *MockTx) ExpireBid(ctx context.Context, id string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExpireBid", ctx, id, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExpireBid indicates an expected call of ExpireBid.
func (mr *MockTxMockRecorder) ExpireBid(ctx, id, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExpireBid", reflect.TypeOf((*MockTx)(nil).ExpireBid), ctx, id, at)
}

// GetBid mocks base method.
func (m *MockTx) GetBid(ctx context.Context, id string) (*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBid", ctx, id)
	ret0, _ := ret[0].(*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBid indicates an expected call of GetBid.
func (mr *MockTxMockRecorder) GetBid(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBid", reflect.TypeOf((*MockTx)(nil).GetBid), ctx, id)
}

// InsertBid mocks base method.
func (m *MockTx) InsertBid(ctx context.Context, bid *models.Bid) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertBid", ctx, bid)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertBid indicates an expected call of InsertBid.
func (mr *MockTxMockRecorder) InsertBid(ctx, bid any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertBid", reflect.TypeOf((*MockTx)(nil).InsertBid), ctx, bid)
}

// InsertChat mocks base method.
func (m *MockTx) InsertChat(ctx context.Context, chat *models.Chat) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertChat", ctx, chat)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertChat indicates an expected call of InsertChat.
func (mr *MockTxMockRecorder) InsertChat(ctx, chat any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertChat", reflect.TypeOf((*MockTx)(nil).InsertChat), ctx, chat)
}

// InsertCoinTransaction mocks base method.
func (m *MockTx) InsertCoinTransaction(ctx context.Context, t *models.CoinTransaction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertCoinTransaction", ctx, t)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertCoinTransaction indicates an expected call of InsertCoinTransaction.
func (mr *MockTxMockRecorder) InsertCoinTransaction(ctx, t any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertCoinTransaction", reflect.TypeOf((*MockTx)(nil).InsertCoinTransaction), ctx, t)
}

// InsertDeal mocks base method.
func (m *MockTx) InsertDeal(ctx context.Context, deal *models.Deal) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertDeal", ctx, deal)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertDeal indicates an expected call of InsertDeal.
func (mr *MockTxMockRecorder) InsertDeal(ctx, deal any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertDeal", reflect.TypeOf((*MockTx)(nil).InsertDeal), ctx, deal)
}

// LockBalance mocks base method.
func (m *MockTx) LockBalance(ctx context.Context, userID string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockBalance", ctx, userID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LockBalance indicates an expected call of LockBalance.
func (mr *MockTxMockRecorder) LockBalance(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockBalance", reflect.TypeOf((*MockTx)(nil).LockBalance), ctx, userID)
}

// LockBid mocks base method.
func (m *MockTx) LockBid(ctx context.Context, id string) (*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockBid", ctx, id)
	ret0, _ := ret[0].(*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LockBid indicates an expected call of LockBid.
func (mr *MockTxMockRecorder) LockBid(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockBid", reflect.TypeOf((*MockTx)(nil).LockBid), ctx, id)
}

// LockListing mocks base method.
func (m *MockTx) LockListing(ctx context.Context, id string) (*models.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockListing", ctx, id)
	ret0, _ := ret[0].(*models.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LockListing indicates an expected call of LockListing.
func (mr *MockTxMockRecorder) LockListing(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockListing", reflect.TypeOf((*MockTx)(nil).LockListing), ctx, id)
}

// MarkListingSold mocks base method.
func (m *MockTx) MarkListingSold(ctx context.Context, listingID string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkListingSold", ctx, listingID, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkListingSold indicates an expected call of MarkListingSold.
func (mr *MockTxMockRecorder) MarkListingSold(ctx, listingID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkListingSold", reflect.TypeOf((*MockTx)(nil).MarkListingSold), ctx, listingID, at)
}

// PendingBidsOnListing mocks base method.
func (m *MockTx) PendingBidsOnListing(ctx context.Context, listingID string, exceptID string) ([]*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PendingBidsOnListing", ctx, listingID, exceptID)
	ret0, _ := ret[0].([]*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PendingBidsOnListing indicates an expected call of PendingBidsOnListing.
func (mr *MockTxMockRecorder) PendingBidsOnListing(ctx, listingID, exceptID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PendingBidsOnListing", reflect.TypeOf((*MockTx)(nil).PendingBidsOnListing), ctx, listingID, exceptID)
}

// RejectBids mocks base method.
func (m *MockTx) RejectBids(ctx context.Context, ids []string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RejectBids", ctx, ids, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// RejectBids indicates an expected call of RejectBids.
func (mr *MockTxMockRecorder) RejectBids(ctx, ids, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RejectBids", reflect.TypeOf((*MockTx)(nil).RejectBids), ctx, ids, at)
}

// MockUnitOfWork is a mock of UnitOfWork interface.
type MockUnitOfWork struct {
	ctrl     *gomock.Controller
	recorder *MockUnitOfWorkMockRecorder
	isgomock struct{}
}

// MockUnitOfWorkMockRecorder is the mock recorder for MockUnitOfWork.
type MockUnitOfWorkMockRecorder struct {
	mock *MockUnitOfWork
}

// NewMockUnitOfWork creates a new mock instance.
func NewMockUnitOfWork(ctrl *gomock.Controller) *MockUnitOfWork {
	mock := &MockUnitOfWork{ctrl: ctrl}
	mock.recorder = &MockUnitOfWorkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUnitOfWork) EXPECT() *MockUnitOfWorkMockRecorder {
	return m.recorder
}

// Do mocks base method.
func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context, bids.Tx) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Do", ctx, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

// Do indicates an expected call of Do.
func (mr *MockUnitOfWorkMockRecorder) Do(ctx, fn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Do", reflect.TypeOf((*MockUnitOfWork)(nil).Do), ctx, fn)
}

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// GetListing mocks base method.
func (m *MockRepository) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetListing", ctx, id)
	ret0, _ := ret[0].(*models.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetListing indicates an expected call of GetListing.
func (mr *MockRepositoryMockRecorder) GetListing(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetListing", reflect.TypeOf((*MockRepository)(nil).GetListing), ctx, id)
}

// ListByListing mocks base method.
func (m *MockRepository) ListByListing(ctx context.Context, listingID string) ([]*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByListing", ctx, listingID)
	ret0, _ := ret[0].([]*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByListing indicates an expected call of ListByListing.
func (mr *MockRepositoryMockRecorder) ListByListing(ctx, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByListing", reflect.TypeOf((*MockRepository)(nil).ListByListing), ctx, listingID)
}

// ListByListingAndBidder mocks base method.
func (m *MockRepository) ListByListingAndBidder(ctx context.Context, listingID string, bidderID string) ([]*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByListingAndBidder", ctx, listingID, bidderID)
	ret0, _ := ret[0].([]*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByListingAndBidder indicates an expected call of ListByListingAndBidder.
func (mr *MockRepositoryMockRecorder) ListByListingAndBidder(ctx, listingID, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByListingAndBidder", reflect.TypeOf((*MockRepository)(nil).ListByListingAndBidder), ctx, listingID, bidderID)
}
