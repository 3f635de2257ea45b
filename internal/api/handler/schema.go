package handler

import (
	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// --- Users ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

type updateUserRequest struct {
	Username        *string `json:"username"        validate:"omitempty,min=3,max=50"`
	Email           *string `json:"email"           validate:"omitempty,email"`
	Password        *string `json:"password"        validate:"omitempty,min=6,max=72"`
	CurrentPassword string  `json:"currentPassword" validate:"omitempty,min=6"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER SUPERADMIN"`
}

// --- Manhwa ---

// createManhwaRequest accepts the cover under either coverImage or cover_image.
type createManhwaRequest struct {
	Title           string `json:"title"       validate:"required,min=3"`
	Description     string `json:"desc"`
	CoverImage      string `json:"coverImage"  validate:"omitempty,url"`
	CoverImageSnake string `json:"cover_image" validate:"omitempty,url"`
}

func (r createManhwaRequest) cover() string {
	if r.CoverImageSnake != "" {
		return r.CoverImageSnake
	}
	return r.CoverImage
}

type updateManhwaRequest struct {
	Title       *string `json:"title"      validate:"omitempty,min=3"`
	Description *string `json:"desc"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,url"`
}

// --- Bookmarks ---

type addBookmarkRequest struct {
	ManhwaID string `json:"manhwaId" validate:"required,uuid"`
	Chapter  int    `json:"chapter"  validate:"omitempty,min=1"`
}

type updateBookmarkRequest struct {
	Chapter int `json:"chapter" validate:"required,min=1"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
