package dto

import "mediatracker/internal/microservices/http-api/models"

// Data Transfer Objects for authentication requests and responses.
// Registration fields are raw so the sanitizers see exactly what was sent.

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username    any `json:"username"`
	DisplayName any `json:"displayName"`
	Password    any `json:"password"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest: payload for refreshing or revoking a session
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenPair is what a successful login, registration or refresh hands back.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
}

type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	TokenPair
	User UserResponse `json:"user"`
}

func FromUserModel(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

// MessageResponse is used for plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}
