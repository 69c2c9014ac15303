package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediatracker/internal/microservices/http-api/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GlobalTypeNames are the media types every user can see.
var GlobalTypeNames = []string{"book", "music"}

const defaultMediaCreator = "Unknown"

// Seed inserts the global media types and the default media. Running it again
// changes nothing.
func Seed(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		typeIDs := make(map[string]int64, len(GlobalTypeNames))
		for _, name := range GlobalTypeNames {
			mt, created, err := ensureGlobalType(tx, name)
			if err != nil {
				return err
			}
			typeIDs[name] = mt.ID
			if created {
				logger.Info("seeded media type", zap.String("name", name), zap.Int64("id", mt.ID))
			}
		}

		var existing models.Media
		err := tx.Where("owner_id = ? AND title = ?", models.GlobalOwner, models.DefaultMediaTitle).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find default media: %w", err)
		}

		creator := defaultMediaCreator
		year := time.Now().Year()
		media := models.Media{
			OwnerID:     models.GlobalOwner,
			MediaTypeID: typeIDs["book"],
			Title:       models.DefaultMediaTitle,
			Creator:     &creator,
			Year:        &year,
			Metadata:    datatypes.JSON("{}"),
		}
		if err := tx.Create(&media).Error; err != nil {
			return fmt.Errorf("create default media: %w", err)
		}
		logger.Info("seeded default media", zap.Int64("id", media.ID))
		return nil
	})
}

func ensureGlobalType(tx *gorm.DB, name string) (*models.MediaType, bool, error) {
	var mt models.MediaType
	err := tx.Where("owner_id = ? AND name = ?", models.GlobalOwner, name).First(&mt).Error
	if err == nil {
		return &mt, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find media type %q: %w", name, err)
	}

	mt = models.MediaType{OwnerID: models.GlobalOwner, Name: name}
	if err := tx.Create(&mt).Error; err != nil {
		return nil, false, fmt.Errorf("create media type %q: %w", name, err)
	}
	return &mt, true, nil
}
