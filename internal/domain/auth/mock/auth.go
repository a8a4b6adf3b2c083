package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/sellfast/marketplace/internal/gateways/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockUserLookup is a mock of UserLookup interface.
type MockUserLookup struct {
	ctrl     *gomock.Controller
	recorder *MockUserLookupMockRecorder
	isgomock struct{}
}

// MockUserLookupMockRecorder is the mock recorder for MockUserLookup.
type MockUserLookupMockRecorder struct {
	mock *MockUserLookup
}

// NewMockUserLookup creates a new mock instance.
func NewMockUserLookup(ctrl *gomock.Controller) *MockUserLookup {
	mock := &MockUserLookup{ctrl: ctrl}
	mock.recorder = &MockUserLookupMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserLookup) EXPECT() *MockUserLookupMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockUserLookup) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockUserLookupMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserLookup)(nil).GetByID), ctx, id)
}
