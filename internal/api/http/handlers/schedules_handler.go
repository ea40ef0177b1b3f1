package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// SchedulesHandler manages family calendar endpoints.
type SchedulesHandler struct {
	schedules *service.ScheduleService
	users     *service.UserService
}

// NewSchedulesHandler constructs handler.
func NewSchedulesHandler(schedules *service.ScheduleService, users *service.UserService) *SchedulesHandler {
	return &SchedulesHandler{schedules: schedules, users: users}
}

// Create POST /schedules.
func (h *SchedulesHandler) Create(c *fiber.Ctx) error {
	userID, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	schedule, err := h.schedules.CreateSchedule(c.UserContext(), familyID, userID, service.ScheduleInput{
		Content:   req.Content,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsRepeat:  req.IsRepeat,
		AlbumID:   req.AlbumID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// List GET /schedules?from=&to=.
func (h *SchedulesHandler) List(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	schedules, err := h.schedules.ListSchedules(c.UserContext(), familyID, from, to)
	if err != nil {
		return err
	}
	items := make([]dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, scheduleResponse(schedule))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PATCH /schedules/:id.
func (h *SchedulesHandler) Update(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	schedule, err := h.schedules.UpdateSchedule(c.UserContext(), familyID, c.Params("id"), service.ScheduleInput{
		Content:   req.Content,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsRepeat:  req.IsRepeat,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// Delete DELETE /schedules/:id.
func (h *SchedulesHandler) Delete(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	if err := h.schedules.DeleteSchedule(c.UserContext(), familyID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LinkAlbum PATCH /schedules/:id/album.
func (h *SchedulesHandler) LinkAlbum(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.LinkAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.schedules.LinkAlbum(c.UserContext(), familyID, c.Params("id"), req.AlbumID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError(name+" query parameter required", nil)
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(name+" must be YYYY-MM-DD", nil)
	}
	return t, nil
}

func scheduleResponse(schedule *domain.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:        schedule.ID,
		AlbumID:   schedule.AlbumID,
		Content:   schedule.Content,
		StartDate: schedule.StartDate,
		EndDate:   schedule.EndDate,
		IsRepeat:  schedule.IsRepeat,
		CreatedAt: schedule.CreatedAt,
	}
}
