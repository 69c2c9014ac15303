package dto

import (
	"encoding/json"
	"time"

	"mediatracker/internal/microservices/http-api/models"
)

// MediaTypeRef names a media type inside a media payload.
type MediaTypeRef struct {
	Name any `json:"name"`
}

// MediaRequest is used for both create and update.
type MediaRequest struct {
	Title     any           `json:"title"`
	MediaType *MediaTypeRef `json:"mediaType"`
	Creator   any           `json:"creator"`
	Year      any           `json:"year"`
	Metadata  any           `json:"metadata"`
}

type MediaResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Creator   *string            `json:"creator"`
	Year      *int               `json:"year"`
	Metadata  json.RawMessage    `json:"metadata"`
	OwnerID   int64              `json:"ownerId"`
	Global    bool               `json:"global"`
	MediaType *MediaTypeResponse `json:"mediaType,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func FromMediaModel(m *models.Media) MediaResponse {
	resp := MediaResponse{
		ID:        m.ID,
		Title:     m.Title,
		Creator:   m.Creator,
		Year:      m.Year,
		OwnerID:   m.OwnerID,
		Global:    m.IsGlobal(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(m.Metadata) > 0 {
		resp.Metadata = json.RawMessage(m.Metadata)
	} else {
		resp.Metadata = json.RawMessage("null")
	}
	if m.MediaType != nil {
		mt := FromMediaTypeModel(m.MediaType)
		resp.MediaType = &mt
	}
	return resp
}

func FromMediaModels(media []models.Media) []MediaResponse {
	out := make([]MediaResponse, 0, len(media))
	for i := range media {
		out = append(out, FromMediaModel(&media[i]))
	}
	return out
}
