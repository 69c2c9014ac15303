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
	"gorm.io/datatypes"
)

type MediaService interface {
	List(ctx context.Context, userID int64) ([]models.Media, error)
	Get(ctx context.Context, userID, id int64) (*models.Media, error)
	Create(ctx context.Context, userID int64, req dto.MediaRequest) (*models.Media, error)
	Update(ctx context.Context, userID, id int64, req dto.MediaRequest) (*models.Media, error)
	Delete(ctx context.Context, userID, id int64, confirm bool) (*DeleteResult, error)
}

type mediaService struct {
	media    repository.MediaRepository
	resolver *OwnershipResolver
	tx       repository.TxManager
	policy   Policy
	log      *zap.Logger
}

func NewMediaService(
	media repository.MediaRepository,
	resolver *OwnershipResolver,
	tx repository.TxManager,
	policy Policy,
	log *zap.Logger,
) MediaService {
	return &mediaService{media: media, resolver: resolver, tx: tx, policy: policy, log: log}
}

// mediaFields is a sanitized MediaRequest. Optional fields are nil when they
// were missing or invalid.
type mediaFields struct {
	title    string
	typeName string
	creator  *string
	year     *int
	metadata datatypes.JSON
}

func (s *mediaService) sanitize(req dto.MediaRequest) (*mediaFields, error) {
	title, ok := sanitize.Title(req.Title)
	if !ok {
		return nil, invalid("Media title is required")
	}
	if req.MediaType == nil {
		return nil, invalid("Media type is required")
	}
	typeName, ok := sanitize.TypeName(req.MediaType.Name)
	if !ok {
		return nil, invalid("Media type is required")
	}

	f := &mediaFields{title: title, typeName: typeName}
	if creator, ok := sanitize.Creator(req.Creator); ok {
		f.creator = &creator
	}
	if year, ok := sanitize.Year(req.Year); ok {
		f.year = &year
	}
	if doc, ok := sanitize.Metadata(req.Metadata); ok {
		encoded, err := models.Metadata(doc).JSON()
		if err != nil {
			return nil, invalid("Media metadata is not valid JSON")
		}
		f.metadata = encoded
	}
	return f, nil
}

func (s *mediaService) List(ctx context.Context, userID int64) ([]models.Media, error) {
	return s.media.ListVisible(ctx, userID)
}

func (s *mediaService) Get(ctx context.Context, userID, id int64) (*models.Media, error) {
	return s.resolver.VisibleMedia(ctx, userID, id)
}

func (s *mediaService) Create(ctx context.Context, userID int64, req dto.MediaRequest) (*models.Media, error) {
	fields, err := s.sanitize(req)
	if err != nil {
		return nil, err
	}

	var media *models.Media
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		mediaType, err := s.resolver.MediaTypeForUserOrGlobal(ctx, userID, fields.typeName)
		if err != nil {
			return err
		}
		if err := s.checkDuplicate(ctx, userID, fields, fields.metadata, 0); err != nil {
			return err
		}

		media = &models.Media{
			OwnerID:     userID,
			MediaTypeID: mediaType.ID,
			Title:       fields.title,
			Creator:     fields.creator,
			Year:        fields.year,
			Metadata:    fields.metadata,
		}
		if err := s.media.Create(ctx, media); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return conflict("Media %q already exists", fields.title)
			}
			return err
		}
		media.MediaType = mediaType
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("media created",
		zap.Int64("user_id", userID),
		zap.Int64("media_id", media.ID),
		zap.String("title", media.Title),
	)
	return media, nil
}

// Update replaces title and type; creator, year and metadata change only
// when supplied.
func (s *mediaService) Update(ctx context.Context, userID, id int64, req dto.MediaRequest) (*models.Media, error) {
	var media *models.Media
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		media, err = s.resolver.OwnedMedia(ctx, userID, id)
		if err != nil {
			return err
		}

		fields, err := s.sanitize(req)
		if err != nil {
			return err
		}
		mediaType, err := s.resolver.MediaTypeForUserOrGlobal(ctx, userID, fields.typeName)
		if err != nil {
			return err
		}

		suppliedMetadata := fields.metadata
		if fields.creator == nil {
			fields.creator = media.Creator
		}
		if fields.year == nil {
			fields.year = media.Year
		}
		if fields.metadata == nil {
			fields.metadata = media.Metadata
		}
		if err := s.checkDuplicate(ctx, userID, fields, suppliedMetadata, media.ID); err != nil {
			return err
		}

		media.Title = fields.title
		media.MediaTypeID = mediaType.ID
		media.MediaType = mediaType
		media.Creator = fields.creator
		media.Year = fields.year
		media.Metadata = fields.metadata
		if err := s.media.Update(ctx, media); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return conflict("Media %q already exists", fields.title)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("media updated", zap.Int64("user_id", userID), zap.Int64("media_id", media.ID))
	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, userID, id int64, confirm bool) (*DeleteResult, error) {
	media, err := s.resolver.OwnedMedia(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	result, err := guardedDelete{
		target: "media",
		kind:   DependentLogs,
		count: func(ctx context.Context) (int64, error) {
			return s.media.CountLogs(ctx, media.ID)
		},
		remove: func(ctx context.Context) error {
			return s.media.Delete(ctx, media.ID)
		},
	}.run(ctx, s.tx, confirm)
	if err != nil {
		return nil, err
	}

	s.log.Info("media deleted",
		zap.Int64("user_id", userID),
		zap.Int64("media_id", media.ID),
		zap.Int64("logs_removed", result.DependentCount),
	)
	return result, nil
}

// checkDuplicate fails with Conflict when another visible media has the same
// identity. metadata is only compared when the caller supplied it and the
// policy allows it.
func (s *mediaService) checkDuplicate(ctx context.Context, userID int64, f *mediaFields, metadata datatypes.JSON, excludeID int64) error {
	identity := models.MediaIdentity{
		Title:    f.title,
		TypeName: f.typeName,
		Creator:  f.creator,
		Year:     f.year,
	}
	if s.policy.DedupeMetadata && metadata != nil {
		identity.Metadata = metadata
	}

	_, err := s.media.FindDuplicate(ctx, userID, identity, excludeID)
	switch {
	case err == nil:
		return conflict("Media %q already exists", f.title)
	case repository.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("check media duplicate: %w", err)
	}
}
