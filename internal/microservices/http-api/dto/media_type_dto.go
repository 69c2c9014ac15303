package dto

import (
	"time"

	"mediatracker/internal/microservices/http-api/models"
)

type CreateMediaTypeRequest struct {
	Name any `json:"name"`
}

type RenameMediaTypeRequest struct {
	NewName any `json:"newName"`
}

type MediaTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"ownerId"`
	Global    bool      `json:"global"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromMediaTypeModel(mt *models.MediaType) MediaTypeResponse {
	return MediaTypeResponse{
		ID:        mt.ID,
		Name:      mt.Name,
		OwnerID:   mt.OwnerID,
		Global:    mt.IsGlobal(),
		CreatedAt: mt.CreatedAt,
	}
}

func FromMediaTypeModels(types []models.MediaType) []MediaTypeResponse {
	out := make([]MediaTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, FromMediaTypeModel(&types[i]))
	}
	return out
}
