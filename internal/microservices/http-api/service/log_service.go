package service

import (
	"context"
	"errors"
	"fmt"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/models"
	"mediatracker/internal/microservices/http-api/repository"
	"mediatracker/internal/sanitize"

	"go.uber.org/zap"
)

type LogService interface {
	List(ctx context.Context, userID int64) ([]models.UserLog, error)
	Get(ctx context.Context, userID, id int64) (*models.UserLog, error)
	Create(ctx context.Context, userID int64, req dto.CreateLogRequest) (*models.UserLog, error)
	Update(ctx context.Context, userID, id int64, req dto.UpdateLogRequest) (*models.UserLog, error)
	Delete(ctx context.Context, userID, id int64) error
}

type logService struct {
	logs     repository.LogRepository
	types    repository.MediaTypeRepository
	resolver *OwnershipResolver
	tx       repository.TxManager
	policy   Policy
	log      *zap.Logger
}

func NewLogService(
	logs repository.LogRepository,
	types repository.MediaTypeRepository,
	resolver *OwnershipResolver,
	tx repository.TxManager,
	policy Policy,
	log *zap.Logger,
) LogService {
	return &logService{logs: logs, types: types, resolver: resolver, tx: tx, policy: policy, log: log}
}

func (s *logService) List(ctx context.Context, userID int64) ([]models.UserLog, error) {
	return s.logs.ListByUser(ctx, userID)
}

// Get hides other users' logs entirely.
func (s *logService) Get(ctx context.Context, userID, id int64) (*models.UserLog, error) {
	l, err := s.resolver.OwnedLog(ctx, userID, id)
	if errors.Is(err, ErrForbidden) {
		return nil, notFound("Log does not exist")
	}
	return l, err
}

// Create logs a visible media for the caller. When the caller has no media
// type of their own with the media's type name, a private copy is created
// alongside the log.
func (s *logService) Create(ctx context.Context, userID int64, req dto.CreateLogRequest) (*models.UserLog, error) {
	mediaID, ok := sanitize.ID(req.MediaID)
	if !ok {
		return nil, invalid("Log needs a media")
	}

	var created *models.UserLog
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.logs.FindByUserAndMedia(ctx, userID, mediaID)
		if err == nil {
			return conflict("Log for this media already exists")
		}
		if !repository.IsNotFound(err) {
			return fmt.Errorf("check existing log: %w", err)
		}

		media, err := s.resolver.VisibleMedia(ctx, userID, mediaID)
		if err != nil {
			return err
		}
		if err := s.ensureOwnType(ctx, userID, media); err != nil {
			return err
		}

		entry := &models.UserLog{UserID: userID, MediaID: media.ID}
		s.applyFields(entry, req.Status, req.Rating, req.Notes)
		if err := s.logs.Create(ctx, entry); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return conflict("Log for this media already exists")
			}
			return err
		}

		created, err = s.logs.FindByID(ctx, entry.ID)
		if err != nil {
			return fmt.Errorf("reload log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("log created",
		zap.Int64("user_id", userID),
		zap.Int64("log_id", created.ID),
		zap.Int64("media_id", mediaID),
	)
	return created, nil
}

func (s *logService) ensureOwnType(ctx context.Context, userID int64, media *models.Media) error {
	if media.MediaType == nil {
		return fmt.Errorf("media %d loaded without its type", media.ID)
	}
	name := media.MediaType.Name

	_, err := s.types.FindByOwnerAndName(ctx, userID, name)
	if err == nil {
		return nil
	}
	if !repository.IsNotFound(err) {
		return fmt.Errorf("check own media type: %w", err)
	}

	copied := &models.MediaType{OwnerID: userID, Name: name}
	if err := s.types.Create(ctx, copied); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return conflict("Media type %q was created concurrently, retry the request", name)
		}
		return err
	}
	s.log.Debug("copied media type for user",
		zap.Int64("user_id", userID),
		zap.String("name", name),
		zap.Int64("media_type_id", copied.ID),
	)
	return nil
}

// applyFields sets each field that sanitizes cleanly and returns the columns
// it touched.
func (s *logService) applyFields(entry *models.UserLog, status, rating, notes any) map[string]any {
	changed := map[string]any{}
	if v, ok := sanitize.Status(status); ok {
		entry.Status = &v
		changed["status"] = v
	}
	if v, ok := s.policy.RatingRange.Rating(rating); ok {
		entry.Rating = &v
		changed["rating"] = v
	}
	if v, ok := sanitize.Notes(notes); ok {
		entry.Notes = &v
		changed["notes"] = v
	}
	return changed
}

// Update applies only the fields that sanitize cleanly; the rest keep their
// stored values.
func (s *logService) Update(ctx context.Context, userID, id int64, req dto.UpdateLogRequest) (*models.UserLog, error) {
	entry, err := s.resolver.OwnedLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changed := s.applyFields(entry, req.Status, req.Rating, req.Notes)
	if len(changed) == 0 {
		return entry, nil
	}
	if err := s.logs.Update(ctx, entry.ID, changed); err != nil {
		return nil, err
	}

	s.log.Info("log updated",
		zap.Int64("user_id", userID),
		zap.Int64("log_id", entry.ID),
		zap.Int("fields", len(changed)),
	)
	return entry, nil
}

func (s *logService) Delete(ctx context.Context, userID, id int64) error {
	entry, err := s.resolver.OwnedLog(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.logs.Delete(ctx, entry.ID); err != nil {
		return err
	}
	s.log.Info("log deleted", zap.Int64("user_id", userID), zap.Int64("log_id", entry.ID))
	return nil
}
