package service

import (
	"context"
	"errors"
	"fmt"

	"mediatracker/internal/config"
	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/models"
	"mediatracker/internal/microservices/http-api/repository"
	"mediatracker/internal/sanitize"

	"go.uber.org/zap"
)

type MediaTypeService interface {
	List(ctx context.Context, userID int64) ([]models.MediaType, error)
	Get(ctx context.Context, userID int64, name string) (*models.MediaType, error)
	Create(ctx context.Context, userID int64, req dto.CreateMediaTypeRequest) (*models.MediaType, error)
	Rename(ctx context.Context, userID int64, name string, req dto.RenameMediaTypeRequest) (*models.MediaType, error)
	Delete(ctx context.Context, userID int64, name string, confirm bool) (*DeleteResult, error)
}

type mediaTypeService struct {
	types    repository.MediaTypeRepository
	resolver *OwnershipResolver
	tx       repository.TxManager
	policy   Policy
	log      *zap.Logger
}

func NewMediaTypeService(
	types repository.MediaTypeRepository,
	resolver *OwnershipResolver,
	tx repository.TxManager,
	policy Policy,
	log *zap.Logger,
) MediaTypeService {
	return &mediaTypeService{types: types, resolver: resolver, tx: tx, policy: policy, log: log}
}

func (s *mediaTypeService) List(ctx context.Context, userID int64) ([]models.MediaType, error) {
	return s.types.ListVisible(ctx, userID)
}

func (s *mediaTypeService) Get(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	normalized, ok := sanitize.TypeName(name)
	if !ok {
		return nil, invalid("Media type name is required")
	}
	return s.resolver.MediaTypeForUserOrGlobal(ctx, userID, normalized)
}

func (s *mediaTypeService) Create(ctx context.Context, userID int64, req dto.CreateMediaTypeRequest) (*models.MediaType, error) {
	name, ok := sanitize.TypeName(req.Name)
	if !ok {
		return nil, invalid("Media type name is required")
	}

	existing, err := s.findClash(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("Media type %q already exists", name)
	}

	mediaType := &models.MediaType{OwnerID: userID, Name: name}
	if err := s.types.Create(ctx, mediaType); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("Media type %q already exists", name)
		}
		return nil, err
	}

	s.log.Info("media type created",
		zap.Int64("user_id", userID),
		zap.Int64("media_type_id", mediaType.ID),
		zap.String("name", name),
	)
	return mediaType, nil
}

func (s *mediaTypeService) Rename(ctx context.Context, userID int64, name string, req dto.RenameMediaTypeRequest) (*models.MediaType, error) {
	current, ok := sanitize.TypeName(name)
	if !ok {
		return nil, invalid("Media type name is required")
	}
	newName, ok := sanitize.TypeName(req.NewName)
	if !ok {
		return nil, invalid("New media type name is required")
	}

	mediaType, err := s.resolver.MediaTypeForUser(ctx, userID, current)
	if err != nil {
		return nil, err
	}
	if mediaType.Name == newName {
		return mediaType, nil
	}

	existing, err := s.findClash(ctx, userID, newName)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != mediaType.ID {
		return nil, conflict("Media type %q already exists", newName)
	}

	if err := s.types.Rename(ctx, mediaType.ID, newName); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("Media type %q already exists", newName)
		}
		return nil, err
	}

	s.log.Info("media type renamed",
		zap.Int64("user_id", userID),
		zap.Int64("media_type_id", mediaType.ID),
		zap.String("from", mediaType.Name),
		zap.String("to", newName),
	)
	mediaType.Name = newName
	return mediaType, nil
}

func (s *mediaTypeService) Delete(ctx context.Context, userID int64, name string, confirm bool) (*DeleteResult, error) {
	normalized, ok := sanitize.TypeName(name)
	if !ok {
		return nil, invalid("Media type name is required")
	}

	mediaType, err := s.resolver.MediaTypeForUser(ctx, userID, normalized)
	if err != nil {
		return nil, err
	}

	result, err := guardedDelete{
		target: "media type",
		kind:   DependentMedia,
		count: func(ctx context.Context) (int64, error) {
			return s.types.CountMedia(ctx, mediaType.ID)
		},
		remove: func(ctx context.Context) error {
			return s.types.Delete(ctx, mediaType.ID)
		},
	}.run(ctx, s.tx, confirm)
	if err != nil {
		return nil, err
	}

	s.log.Info("media type deleted",
		zap.Int64("user_id", userID),
		zap.Int64("media_type_id", mediaType.ID),
		zap.Int64("media_removed", result.DependentCount),
	)
	return result, nil
}

// findClash returns the row that would collide with name under the
// configured namespace rule, or nil.
func (s *mediaTypeService) findClash(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	var (
		existing *models.MediaType
		err      error
	)
	if s.policy.TypeNamespace == config.NamespaceVisible {
		existing, err = s.types.FindVisibleByName(ctx, userID, name)
	} else {
		existing, err = s.types.FindByOwnerAndName(ctx, userID, name)
	}
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check media type name: %w", err)
	}
	return existing, nil
}
