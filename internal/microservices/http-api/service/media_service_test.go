package service

import (
	"context"
	"testing"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newMediaService(types *MockMediaTypeRepository, media *MockMediaRepository, policy Policy) MediaService {
	resolver := NewOwnershipResolver(types, media, new(MockLogRepository))
	return NewMediaService(media, resolver, &fakeTx{}, policy, zap.NewNop())
}

var globalBook = &models.MediaType{ID: 1, OwnerID: models.GlobalOwner, Name: "book"}

func duneRequest() dto.MediaRequest {
	return dto.MediaRequest{
		Title:     "Dune",
		MediaType: &dto.MediaTypeRef{Name: "Books"},
		Creator:   "Frank Herbert",
		Year:      float64(1965),
	}
}

func TestMediaService_Create(t *testing.T) {
	types := new(MockMediaTypeRepository)
	media := new(MockMediaRepository)
	svc := newMediaService(types, media, DefaultPolicy())

	types.On("FindVisibleByName", mock.Anything, userA, "book").Return(globalBook, nil)
	media.On("FindDuplicate", mock.Anything, userA, models.MediaIdentity{
		Title:    "Dune",
		TypeName: "book",
		Creator:  strPtr("Frank Herbert"),
		Year:     intPtr(1965),
	}, int64(0)).Return(nil, gorm.ErrRecordNotFound)
	media.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Media) bool {
		return m.OwnerID == userA && m.MediaTypeID == globalBook.ID && m.Title == "Dune" && m.Metadata == nil
	})).Return(nil)

	m, err := svc.Create(context.Background(), userA, duneRequest())

	require.NoError(t, err)
	assert.Equal(t, "book", m.MediaType.Name)
	assert.Equal(t, 1965, *m.Year)
	media.AssertExpectations(t)
}

func TestMediaService_Create_Duplicate(t *testing.T) {
	types := new(MockMediaTypeRepository)
	media := new(MockMediaRepository)
	svc := newMediaService(types, media, DefaultPolicy())

	types.On("FindVisibleByName", mock.Anything, userA, "book").Return(globalBook, nil)
	media.On("FindDuplicate", mock.Anything, userA, mock.Anything, int64(0)).
		Return(&models.Media{ID: 12, OwnerID: models.GlobalOwner, Title: "Dune"}, nil)

	_, err := svc.Create(context.Background(), userA, duneRequest())

	assert.ErrorIs(t, err, ErrConflict)
	media.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMediaService_Create_RequiredFields(t *testing.T) {
	svc := newMediaService(new(MockMediaTypeRepository), new(MockMediaRepository), DefaultPolicy())

	_, err := svc.Create(context.Background(), userA, dto.MediaRequest{MediaType: &dto.MediaTypeRef{Name: "book"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), userA, dto.MediaRequest{Title: "Dune"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), userA, dto.MediaRequest{Title: "Dune", MediaType: &dto.MediaTypeRef{Name: " "}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMediaService_Create_UnknownType(t *testing.T) {
	types := new(MockMediaTypeRepository)
	svc := newMediaService(types, new(MockMediaRepository), DefaultPolicy())

	types.On("FindVisibleByName", mock.Anything, userA, "zine").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), userA, dto.MediaRequest{Title: "Zine #1", MediaType: &dto.MediaTypeRef{Name: "zines"}})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMediaService_Create_MetadataInDuplicateCheck(t *testing.T) {
	types := new(MockMediaTypeRepository)
	media := new(MockMediaRepository)
	svc := newMediaService(types, media, DefaultPolicy())

	req := duneRequest()
	req.Metadata = `{"format":"hardcover"}`

	types.On("FindVisibleByName", mock.Anything, userA, "book").Return(globalBook, nil)
	media.On("FindDuplicate", mock.Anything, userA, mock.MatchedBy(func(id models.MediaIdentity) bool {
		return string(id.Metadata) == `{"format":"hardcover"}`
	}), int64(0)).Return(nil, gorm.ErrRecordNotFound)
	media.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), userA, req)

	require.NoError(t, err)
	media.AssertExpectations(t)
}

func TestMediaService_Create_MetadataIgnoredWhenPolicyOff(t *testing.T) {
	types := new(MockMediaTypeRepository)
	media := new(MockMediaRepository)
	policy := DefaultPolicy()
	policy.DedupeMetadata = false
	svc := newMediaService(types, media, policy)

	req := duneRequest()
	req.Metadata = map[string]any{"format": "hardcover"}

	types.On("FindVisibleByName", mock.Anything, userA, "book").Return(globalBook, nil)
	media.On("FindDuplicate", mock.Anything, userA, mock.MatchedBy(func(id models.MediaIdentity) bool {
		return id.Metadata == nil
	}), int64(0)).Return(nil, gorm.ErrRecordNotFound)
	media.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Media) bool {
		return string(m.Metadata) == `{"format":"hardcover"}`
	})).Return(nil)

	_, err := svc.Create(context.Background(), userA, req)

	require.NoError(t, err)
	media.AssertExpectations(t)
}

func TestMediaService_Update_ExcludesItself(t *testing.T) {
	types := new(MockMediaTypeRepository)
	media := new(MockMediaRepository)
	svc := newMediaService(types, media, DefaultPolicy())

	existing := &models.Media{
		ID:          20,
		OwnerID:     userA,
		MediaTypeID: 1,
		Title:       "Dune",
		Creator:     strPtr("Frank Herbert"),
		Year:        intPtr(1965),
		Metadata:    datatypes.JSON(`{"format":"paperback"}`),
	}
	media.On("FindByID", mock.Anything, int64(20)).Return(existing, nil)
	types.On("FindVisibleByName", mock.Anything, userA, "book").Return(globalBook, nil)
	media.On("FindDuplicate", mock.Anything, userA, models.MediaIdentity{
		Title:    "Dune Messiah",
		TypeName: "book",
		Creator:  strPtr("Frank Herbert"),
		Year:     intPtr(1965),
	}, int64(20)).Return(nil, gorm.ErrRecordNotFound)
	media.On("Update", mock.Anything, existing).Return(nil)

	m, err := svc.Update(context.Background(), userA, 20, dto.MediaRequest{
		Title:     "Dune Messiah",
		MediaType: &dto.MediaTypeRef{Name: "book"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", m.Title)
	assert.Equal(t, "Frank Herbert", *m.Creator)
	assert.JSONEq(t, `{"format":"paperback"}`, string(m.Metadata))
	media.AssertExpectations(t)
}

func TestMediaService_Update_NotOwner(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(20)).Return(&models.Media{ID: 20, OwnerID: userB}, nil)

	_, err := svc.Update(context.Background(), userA, 20, duneRequest())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMediaService_Delete_OtherUsersMediaIsForbidden(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(20)).Return(&models.Media{ID: 20, OwnerID: userB}, nil)

	_, err := svc.Delete(context.Background(), userA, 20, true)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrNotFound)
	media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMediaService_Delete_GlobalMediaIsForbidden(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(1)).Return(&models.Media{ID: 1, OwnerID: models.GlobalOwner}, nil)

	_, err := svc.Delete(context.Background(), userA, 1, true)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMediaService_Delete_Missing(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Delete(context.Background(), userA, 99, false)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMediaService_Delete_WithLogsNeedsConfirmation(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(20)).Return(&models.Media{ID: 20, OwnerID: userA}, nil)
	media.On("CountLogs", mock.Anything, int64(20)).Return(int64(1), nil)

	_, err := svc.Delete(context.Background(), userA, 20, false)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	media.On("Delete", mock.Anything, int64(20)).Return(nil)
	result, err := svc.Delete(context.Background(), userA, 20, true)
	require.NoError(t, err)
	assert.Equal(t, Executed, result.State)
	assert.Equal(t, DependentLogs, result.DependentKind)
	assert.Equal(t, int64(1), result.DependentCount)
}

func TestMediaService_Get_HidesOtherUsersMedia(t *testing.T) {
	media := new(MockMediaRepository)
	svc := newMediaService(new(MockMediaTypeRepository), media, DefaultPolicy())

	media.On("FindByID", mock.Anything, int64(20)).Return(&models.Media{ID: 20, OwnerID: userB}, nil)
	media.On("FindByID", mock.Anything, int64(1)).Return(&models.Media{ID: 1, OwnerID: models.GlobalOwner}, nil)

	_, err := svc.Get(context.Background(), userA, 20)
	assert.ErrorIs(t, err, ErrNotFound)

	m, err := svc.Get(context.Background(), userA, 1)
	require.NoError(t, err)
	assert.True(t, m.IsGlobal())
}
