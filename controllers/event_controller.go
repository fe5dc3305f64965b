package controller

import (
	"bytes"
	"encoding/json"
	"log"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EventController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewEventController(db *gorm.DB, logger *log.Logger) *EventController {
	return &EventController{
		DB:     db,
		Logger: logger,
	}
}

func (ec *EventController) CreateEvent(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name      string     `json:"name" validate:"required,max=300"`
		Location  string     `json:"location" validate:"omitempty,max=300"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
		Notes     string     `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "End date before start date", nil)
	}

	event := models.Event{
		UserID:    user.ID,
		Name:      input.Name,
		Location:  input.Location,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create event", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(event))
}

func (ec *EventController) GetEvents(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := ec.DB.Where("user_id = ?", user.ID)
	if c.Query("upcoming") == "true" {
		query = query.Where("start_date >= ?", time.Now())
	}

	var events []models.Event
	if err := query.Order("start_date asc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch events", err)
	}

	return c.JSON(utils.SuccessResponse(events))
}

func (ec *EventController) GetEvent(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var event models.Event
	if err := ec.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}

	return c.JSON(utils.SuccessResponse(event))
}

func (ec *EventController) UpdateEvent(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var event models.Event
	if err := ec.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}

	var input struct {
		Name      *string    `json:"name" validate:"omitempty,max=300"`
		Location  *string    `json:"location" validate:"omitempty,max=300"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
		Notes     *string    `json:"notes"`
	}
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartDate != nil {
		event.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = input.EndDate
	}
	if input.Notes != nil {
		event.Notes = *input.Notes
	}
	if event.StartDate != nil && event.EndDate != nil && event.EndDate.Before(*event.StartDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "End date before start date", nil)
	}

	if err := ec.DB.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update event", err)
	}

	return c.JSON(utils.SuccessResponse(event))
}

func (ec *EventController) DeleteEvent(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	result := ec.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).Delete(&models.Event{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Event deleted"})
}
