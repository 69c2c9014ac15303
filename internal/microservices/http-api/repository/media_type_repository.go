package repository

import (
	"context"
	"fmt"

	"mediatracker/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// MediaTypeRepository stores media types. Lookups by name expect the name to
// be normalized already.
type MediaTypeRepository interface {
	ListVisible(ctx context.Context, userID int64) ([]models.MediaType, error)
	FindVisibleByName(ctx context.Context, userID int64, name string) (*models.MediaType, error)
	FindByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.MediaType, error)
	Create(ctx context.Context, mediaType *models.MediaType) error
	Rename(ctx context.Context, id int64, name string) error
	CountMedia(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type mediaTypeRepository struct {
	db *gorm.DB
}

func NewMediaTypeRepository(db *gorm.DB) MediaTypeRepository {
	return &mediaTypeRepository{db: db}
}

// visibleTo restricts a query to global rows and rows owned by userID.
func visibleTo(column string, userID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", []int64{models.GlobalOwner, userID})
	}
}

func (r *mediaTypeRepository) ListVisible(ctx context.Context, userID int64) ([]models.MediaType, error) {
	var types []models.MediaType
	err := conn(ctx, r.db).
		Scopes(visibleTo("owner_id", userID)).
		Order("name ASC, owner_id DESC").
		Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("list media types: %w", err)
	}
	return types, nil
}

// FindVisibleByName prefers the caller's own row over the global one.
func (r *mediaTypeRepository) FindVisibleByName(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	var mediaType models.MediaType
	err := conn(ctx, r.db).
		Scopes(visibleTo("owner_id", userID)).
		Where("name = ?", name).
		Order("owner_id DESC").
		First(&mediaType).Error
	if err != nil {
		return nil, err
	}
	return &mediaType, nil
}

func (r *mediaTypeRepository) FindByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.MediaType, error) {
	var mediaType models.MediaType
	err := conn(ctx, r.db).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&mediaType).Error
	if err != nil {
		return nil, err
	}
	return &mediaType, nil
}

func (r *mediaTypeRepository) Create(ctx context.Context, mediaType *models.MediaType) error {
	if err := conn(ctx, r.db).Create(mediaType).Error; err != nil {
		return fmt.Errorf("create media type: %w", translate(err))
	}
	return nil
}

func (r *mediaTypeRepository) Rename(ctx context.Context, id int64, name string) error {
	err := conn(ctx, r.db).
		Model(&models.MediaType{}).
		Where("id = ?", id).
		Update("name", name).Error
	if err != nil {
		return fmt.Errorf("rename media type: %w", translate(err))
	}
	return nil
}

// CountMedia counts the media rows that would be removed with the type.
func (r *mediaTypeRepository) CountMedia(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.Media{}).
		Where("media_type_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count media for type: %w", err)
	}
	return count, nil
}

// Delete removes the type. Its media and their logs go with it via
// ON DELETE CASCADE.
func (r *mediaTypeRepository) Delete(ctx context.Context, id int64) error {
	if err := conn(ctx, r.db).Delete(&models.MediaType{}, id).Error; err != nil {
		return fmt.Errorf("delete media type: %w", err)
	}
	return nil
}
