package repository

import (
	"context"
	"fmt"

	"mediatracker/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// LogRepository stores user logs.
type LogRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.UserLog, error)
	FindByID(ctx context.Context, id int64) (*models.UserLog, error)
	FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserLog, error)
	Create(ctx context.Context, log *models.UserLog) error
	// Update writes only the given columns.
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserLog, error) {
	var logs []models.UserLog
	err := conn(ctx, r.db).
		Preload("Media.MediaType").
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

func (r *logRepository) FindByID(ctx context.Context, id int64) (*models.UserLog, error) {
	var log models.UserLog
	if err := conn(ctx, r.db).Preload("Media.MediaType").First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *logRepository) FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserLog, error) {
	var log models.UserLog
	err := conn(ctx, r.db).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *logRepository) Create(ctx context.Context, log *models.UserLog) error {
	if err := conn(ctx, r.db).Create(log).Error; err != nil {
		return fmt.Errorf("create log: %w", translate(err))
	}
	return nil
}

func (r *logRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := conn(ctx, r.db).
		Model(&models.UserLog{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update log: %w", translate(err))
	}
	return nil
}

func (r *logRepository) Delete(ctx context.Context, id int64) error {
	if err := conn(ctx, r.db).Delete(&models.UserLog{}, id).Error; err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return nil
}
