package dto

import (
	"time"

	"mediatracker/internal/microservices/http-api/models"
)

type CreateLogRequest struct {
	MediaID any `json:"mediaId"`
	Status  any `json:"status"`
	Rating  any `json:"rating"`
	Notes   any `json:"notes"`
}

// UpdateLogRequest: fields that are missing or fail sanitization are left
// unchanged.
type UpdateLogRequest struct {
	Status any `json:"status"`
	Rating any `json:"rating"`
	Notes  any `json:"notes"`
}

type LogResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	MediaID   int64          `json:"mediaId"`
	Status    *string        `json:"status"`
	Rating    *float64       `json:"rating"`
	Notes     *string        `json:"notes"`
	LoggedAt  time.Time      `json:"loggedAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Media     *MediaResponse `json:"media,omitempty"`
}

func FromLogModel(l *models.UserLog) LogResponse {
	resp := LogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		MediaID:   l.MediaID,
		Status:    l.Status,
		Rating:    l.Rating,
		Notes:     l.Notes,
		LoggedAt:  l.LoggedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Media != nil {
		m := FromMediaModel(l.Media)
		resp.Media = &m
	}
	return resp
}

func FromLogModels(logs []models.UserLog) []LogResponse {
	out := make([]LogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, FromLogModel(&logs[i]))
	}
	return out
}
