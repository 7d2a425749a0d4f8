package widget

import (
	"context"
	"testing"

	"homewidget/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockWidgetRepo struct {
	mock.Mock
}

func (m *mockWidgetRepo) Create(ctx context.Context, w *domain.Widget) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWidgetRepo) GetByID(ctx context.Context, id int64) (*domain.Widget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Widget), args.Error(1)
}

func (m *mockWidgetRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Widget, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Widget), args.Error(1)
}

func (m *mockWidgetRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create_Defaults(t *testing.T) {
	repo := new(mockWidgetRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Widget) bool {
		return w.OwnerID == 7 && w.Enabled && w.ConfigJSON == "{}"
	})).Return(nil)

	svc := NewService(repo)

	w, err := svc.Create(context.Background(), 7, CreateWidgetRequest{Name: "Sofa Classic"})
	require.NoError(t, err)
	assert.Equal(t, "Sofa Classic", w.Name)
	assert.True(t, w.Enabled)
	repo.AssertExpectations(t)
}

func TestService_Create_ExplicitDisabled(t *testing.T) {
	repo := new(mockWidgetRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Widget) bool {
		return !w.Enabled
	})).Return(nil)

	svc := NewService(repo)
	disabled := false

	_, err := svc.Create(context.Background(), 7, CreateWidgetRequest{Name: "Hidden", Enabled: &disabled})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Delete_Owned(t *testing.T) {
	repo := new(mockWidgetRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Widget{ID: 3, OwnerID: 7}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), 7, 3))
	repo.AssertExpectations(t)
}

func TestService_Delete_ForeignWidget(t *testing.T) {
	repo := new(mockWidgetRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Widget{ID: 3, OwnerID: 99}, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrWidgetNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete_Missing(t *testing.T) {
	repo := new(mockWidgetRepo)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), 7, 404)
	assert.ErrorIs(t, err, ErrWidgetNotFound)
}
