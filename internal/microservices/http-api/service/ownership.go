package service

import (
	"context"
	"fmt"

	"mediatracker/internal/microservices/http-api/models"
	"mediatracker/internal/microservices/http-api/repository"
)

// OwnershipResolver answers "may this user see it" and "may this user change
// it" for media types, media and logs. Reads accept global rows; mutations
// require the caller to be the owner.
type OwnershipResolver struct {
	types repository.MediaTypeRepository
	media repository.MediaRepository
	logs  repository.LogRepository
}

func NewOwnershipResolver(
	types repository.MediaTypeRepository,
	media repository.MediaRepository,
	logs repository.LogRepository,
) *OwnershipResolver {
	return &OwnershipResolver{types: types, media: media, logs: logs}
}

// MediaTypeForUserOrGlobal finds a visible type by normalized name, the
// caller's own row first.
func (r *OwnershipResolver) MediaTypeForUserOrGlobal(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	mt, err := r.types.FindVisibleByName(ctx, userID, name)
	if repository.IsNotFound(err) {
		return nil, notFound("Media type %q does not exist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve media type: %w", err)
	}
	return mt, nil
}

// MediaTypeForUser finds a type the caller owns. A name that only exists
// globally is Forbidden rather than NotFound.
func (r *OwnershipResolver) MediaTypeForUser(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	mt, err := r.types.FindByOwnerAndName(ctx, userID, name)
	if err == nil {
		return mt, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("resolve owned media type: %w", err)
	}

	_, err = r.types.FindByOwnerAndName(ctx, models.GlobalOwner, name)
	switch {
	case err == nil:
		return nil, forbidden("You do not own media type %q", name)
	case repository.IsNotFound(err):
		return nil, notFound("Media type %q does not exist", name)
	default:
		return nil, fmt.Errorf("resolve global media type: %w", err)
	}
}

// VisibleMedia returns the media if it is global or owned by the caller.
func (r *OwnershipResolver) VisibleMedia(ctx context.Context, userID, id int64) (*models.Media, error) {
	m, err := r.media.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, notFound("Media does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve media: %w", err)
	}
	if !m.IsGlobal() && m.OwnerID != userID {
		return nil, notFound("Media does not exist")
	}
	return m, nil
}

// OwnedMedia returns the media if the caller owns it. Global rows and other
// users' rows are Forbidden.
func (r *OwnershipResolver) OwnedMedia(ctx context.Context, userID, id int64) (*models.Media, error) {
	m, err := r.media.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, notFound("Media does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve media: %w", err)
	}
	if m.OwnerID != userID {
		return nil, forbidden("You do not own this media")
	}
	return m, nil
}

// OwnedLog returns the log if the caller wrote it.
func (r *OwnershipResolver) OwnedLog(ctx context.Context, userID, id int64) (*models.UserLog, error) {
	l, err := r.logs.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, notFound("Log does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve log: %w", err)
	}
	if l.UserID != userID {
		return nil, forbidden("You do not own this log")
	}
	return l, nil
}
