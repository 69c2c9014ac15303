package repository

import (
	"context"
	"fmt"

	"mediatracker/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MediaRepository interface {
	ListVisible(ctx context.Context, userID int64) ([]models.Media, error)
	FindByID(ctx context.Context, id int64) (*models.Media, error)
	FindGlobalByTitle(ctx context.Context, title string) (*models.Media, error)
	FindDuplicate(ctx context.Context, userID int64, identity models.MediaIdentity, excludeID int64) (*models.Media, error)
	Create(ctx context.Context, media *models.Media) error
	Update(ctx context.Context, media *models.Media) error
	CountLogs(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) ListVisible(ctx context.Context, userID int64) ([]models.Media, error) {
	var media []models.Media
	err := conn(ctx, r.db).
		Preload("MediaType").
		Scopes(visibleTo("owner_id", userID)).
		Order("title ASC, id ASC").
		Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return media, nil
}

// FindByID looks the row up regardless of owner; visibility is the caller's
// concern.
func (r *mediaRepository) FindByID(ctx context.Context, id int64) (*models.Media, error) {
	var media models.Media
	if err := conn(ctx, r.db).Preload("MediaType").First(&media, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) FindGlobalByTitle(ctx context.Context, title string) (*models.Media, error) {
	var media models.Media
	err := conn(ctx, r.db).
		Where("owner_id = ? AND title = ?", models.GlobalOwner, title).
		First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// FindDuplicate returns a visible media row matching identity, skipping
// excludeID when it is non-zero. Media types are matched by name so a global
// "book" and a private "book" collide.
func (r *mediaRepository) FindDuplicate(ctx context.Context, userID int64, identity models.MediaIdentity, excludeID int64) (*models.Media, error) {
	q := conn(ctx, r.db).
		Select("media.*").
		Joins("JOIN media_types ON media_types.id = media.media_type_id").
		Scopes(visibleTo("media.owner_id", userID)).
		Where("media.title = ? AND media_types.name = ?", identity.Title, identity.TypeName)

	if identity.Creator != nil {
		q = q.Where("media.creator = ?", *identity.Creator)
	} else {
		q = q.Where("media.creator IS NULL")
	}
	if identity.Year != nil {
		q = q.Where("media.year = ?", *identity.Year)
	} else {
		q = q.Where("media.year IS NULL")
	}
	if identity.Metadata != nil {
		q = q.Where("media.metadata = ?", identity.Metadata)
	}
	if excludeID != 0 {
		q = q.Where("media.id <> ?", excludeID)
	}

	var media models.Media
	if err := q.First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	if err := conn(ctx, r.db).Create(media).Error; err != nil {
		return fmt.Errorf("create media: %w", translate(err))
	}
	return nil
}

// Update writes every editable column, including NULLs.
func (r *mediaRepository) Update(ctx context.Context, media *models.Media) error {
	err := conn(ctx, r.db).
		Model(media).
		Select("media_type_id", "title", "creator", "year", "metadata", "updated_at").
		Updates(media).Error
	if err != nil {
		return fmt.Errorf("update media: %w", translate(err))
	}
	return nil
}

// CountLogs counts every log on the media, across all users.
func (r *mediaRepository) CountLogs(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.UserLog{}).
		Where("media_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count logs for media: %w", err)
	}
	return count, nil
}

// Delete removes the media; logs cascade.
func (r *mediaRepository) Delete(ctx context.Context, id int64) error {
	if err := conn(ctx, r.db).Delete(&models.Media{}, id).Error; err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
