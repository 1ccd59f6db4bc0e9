package dto

import "github.com/BruksfildServices01/studiobook/internal/models"

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
