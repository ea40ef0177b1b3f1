package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// AlbumsHandler manages album endpoints.
type AlbumsHandler struct {
	albums *service.AlbumService
	users  *service.UserService
}

// NewAlbumsHandler constructs handler.
func NewAlbumsHandler(albums *service.AlbumService, users *service.UserService) *AlbumsHandler {
	return &AlbumsHandler{albums: albums, users: users}
}

// Create POST /albums.
func (h *AlbumsHandler) Create(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.CreateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	album, uploadURL, err := h.albums.CreateAlbum(c.UserContext(), familyID, service.AlbumInput{
		Name:            req.Name,
		Content:         req.Content,
		BackgroundColor: req.BackgroundColor,
		NewThumbnail:    req.NewThumbnail,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AlbumMutationResponse{
		Album:     h.albumResponse(album),
		UploadURL: uploadURL,
	}})
}

// List GET /albums.
func (h *AlbumsHandler) List(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	albums, err := h.albums.ListAlbums(c.UserContext(), familyID)
	if err != nil {
		return err
	}
	items := make([]dto.AlbumResponse, 0, len(albums))
	for _, album := range albums {
		items = append(items, h.albumResponse(album))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /albums/:id.
func (h *AlbumsHandler) Get(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	album, err := h.albums.GetAlbum(c.UserContext(), familyID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.albumResponse(album)})
}

// Update PATCH /albums/:id.
func (h *AlbumsHandler) Update(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.UpdateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	album, uploadURL, err := h.albums.UpdateAlbum(c.UserContext(), familyID, c.Params("id"), service.AlbumInput{
		Name:            req.Name,
		Content:         req.Content,
		BackgroundColor: req.BackgroundColor,
		NewThumbnail:    req.NewThumbnail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AlbumMutationResponse{
		Album:     h.albumResponse(album),
		UploadURL: uploadURL,
	}})
}

func (h *AlbumsHandler) albumResponse(album *domain.Album) dto.AlbumResponse {
	return dto.AlbumResponse{
		ID:              album.ID,
		Name:            album.Name,
		Content:         album.Content,
		BackgroundColor: album.BackgroundColor,
		ThumbnailURL:    h.albums.ThumbnailURL(album),
		IsDefault:       album.IsDefault,
		CreatedAt:       album.CreatedAt,
	}
}
