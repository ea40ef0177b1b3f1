package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// LettersHandler manages letter endpoints.
type LettersHandler struct {
	letters *service.LetterService
}

// NewLettersHandler constructs handler.
func NewLettersHandler(letters *service.LetterService) *LettersHandler {
	return &LettersHandler{letters: letters}
}

// Send POST /letters.
func (h *LettersHandler) Send(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.SendLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.LetterInput{
		ReceiverID:      req.ReceiverID,
		Type:            req.Type,
		Content:         req.Content,
		BackgroundColor: req.BackgroundColor,
	}
	if req.OpenAt != nil {
		input.OpenAt = *req.OpenAt
	}

	letter, uploadURL, err := h.letters.SendLetter(c.UserContext(), identity.Subject, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SendLetterResponse{
		Letter:    h.letterResponse(letter, false),
		UploadURL: uploadURL,
	}})
}

// ListReceived GET /letters.
func (h *LettersHandler) ListReceived(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	letters, err := h.letters.ListReceived(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	items := make([]dto.LetterResponse, 0, len(letters))
	for _, letter := range letters {
		// Sealed letters keep their content hidden in list views.
		items = append(items, h.letterResponse(letter, !letter.Openable(time.Now())))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Read GET /letters/:id.
func (h *LettersHandler) Read(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	letter, err := h.letters.ReadLetter(c.UserContext(), identity.Subject, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.letterResponse(letter, false)})
}

func (h *LettersHandler) letterResponse(letter *domain.Letter, sealed bool) dto.LetterResponse {
	resp := dto.LetterResponse{
		ID:              letter.ID,
		SenderID:        letter.SenderID,
		ReceiverID:      letter.ReceiverID,
		Type:            letter.Type,
		BackgroundColor: letter.BackgroundColor,
		OpenAt:          letter.OpenAt,
		Openable:        letter.Openable(time.Now()),
		IsRead:          letter.IsRead,
		CreatedAt:       letter.CreatedAt,
	}
	if sealed {
		return resp
	}
	if letter.Type == domain.LetterTypeAudio {
		resp.AudioURL = h.letters.AudioURL(letter)
	} else {
		resp.Content = letter.Content
	}
	return resp
}
