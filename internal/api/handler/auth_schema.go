package handler

import (
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

type signupRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	Phone    string `json:"phone"`
}

type signupResponse struct {
	User      *domain.User      `json:"user"`
	Affiliate *domain.Affiliate `json:"affiliate"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	User      *domain.User      `json:"user"`
	Affiliate *domain.Affiliate `json:"affiliate,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
