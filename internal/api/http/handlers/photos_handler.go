package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// PhotosHandler manages photo and review endpoints.
type PhotosHandler struct {
	photos *service.PhotoService
	users  *service.UserService
}

// NewPhotosHandler constructs handler.
func NewPhotosHandler(photos *service.PhotoService, users *service.UserService) *PhotosHandler {
	return &PhotosHandler{photos: photos, users: users}
}

// PrepareUpload POST /albums/:id/photos/prepare.
func (h *PhotosHandler) PrepareUpload(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.PrepareUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	tickets, err := h.photos.PrepareUpload(c.UserContext(), familyID, c.Params("id"), req.Count)
	if err != nil {
		return err
	}
	items := make([]dto.UploadTicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, dto.UploadTicketResponse{Key: ticket.Key, UploadURL: ticket.UploadURL})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Register POST /albums/:id/photos.
func (h *PhotosHandler) Register(c *fiber.Ctx) error {
	userID, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.RegisterPhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	photos, err := h.photos.RegisterPhotos(c.UserContext(), familyID, c.Params("id"), userID, req.Keys)
	if err != nil {
		return err
	}
	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, h.photoResponse(photo))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": items})
}

// List GET /albums/:id/photos.
func (h *PhotosHandler) List(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	photos, err := h.photos.ListPhotos(c.UserContext(), familyID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, h.photoResponse(photo))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Move POST /photos/move.
func (h *PhotosHandler) Move(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.MovePhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	moved, err := h.photos.MovePhotos(c.UserContext(), familyID, req.PhotoIDs, req.FromAlbumID, req.ToAlbumID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MovePhotosResponse{Moved: moved}})
}

// AddReview POST /photos/:id/reviews.
func (h *PhotosHandler) AddReview(c *fiber.Ctx) error {
	userID, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	review, err := h.photos.AddReview(c.UserContext(), familyID, c.Params("id"), userID, req.Type, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reviewResponse(review)})
}

// ListReviews GET /photos/:id/reviews.
func (h *PhotosHandler) ListReviews(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	reviews, err := h.photos.ListReviews(c.UserContext(), familyID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewResponse(review))
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *PhotosHandler) photoResponse(photo *domain.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:        photo.ID,
		AlbumID:   photo.AlbumID,
		URL:       h.photos.PhotoURL(photo),
		CreatedAt: photo.CreatedAt,
	}
}

func reviewResponse(review *domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		PhotoID:   review.PhotoID,
		WriterID:  review.WriterID,
		Type:      review.Type,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}
}
