package dto

import (
	"time"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// RequestFontRequest payload.
type RequestFontRequest struct {
	Name    string `json:"name" validate:"required,max=20"`
	NameEng string `json:"nameEng" validate:"required,max=40"`
}

// ReviewFontRequest payload for admin approval. Path is the generated font
// file's storage key and is required on approval.
type ReviewFontRequest struct {
	Approve bool   `json:"approve"`
	Path    string `json:"path" validate:"required_if=Approve true"`
}

// FontResponse view. TemplateURL points at the uploaded handwriting sample so
// a reviewer can inspect it.
type FontResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	NameEng     string            `json:"nameEng"`
	Status      domain.FontStatus `json:"status"`
	TemplateURL string            `json:"templateUrl,omitempty"`
	FileURL     string            `json:"fileUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// RequestFontResponse couples the created request with the handwriting
// template upload URL.
type RequestFontResponse struct {
	Font      FontResponse `json:"font"`
	UploadURL string       `json:"uploadUrl"`
}
