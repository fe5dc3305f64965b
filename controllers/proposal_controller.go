package controller

import (
	"bytes"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProposalController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProposalController(db *gorm.DB, logger *log.Logger) *ProposalController {
	return &ProposalController{
		DB:     db,
		Logger: logger,
	}
}

func (pc *ProposalController) CreateProposal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Title   string     `json:"title" validate:"required,max=300"`
		LeadID  *uint      `json:"lead_id"`
		Status  string     `json:"status" validate:"omitempty,oneof=Draft 'In Review' Submitted Won Lost"`
		DueDate *time.Time `json:"due_date"`
		Amount  float64    `json:"amount" validate:"omitempty,min=0"`
		Notes   string     `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	// A linked lead must belong to the caller
	if input.LeadID != nil {
		var count int64
		if err := pc.DB.Model(&models.Lead{}).
			Where("id = ? AND user_id = ?", *input.LeadID, user.ID).
			Count(&count).Error; err != nil || count == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Lead not found", nil)
		}
	}

	proposal := models.Proposal{
		UserID:  user.ID,
		LeadID:  input.LeadID,
		Title:   input.Title,
		DueDate: input.DueDate,
		Amount:  input.Amount,
		Notes:   input.Notes,
	}
	if input.Status != "" {
		proposal.Status = input.Status
	}

	if err := pc.DB.Create(&proposal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create proposal", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(proposal))
}

func (pc *ProposalController) GetProposals(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	query := pc.DB.Model(&models.Proposal{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", leadID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count proposals", err)
	}

	var proposals []models.Proposal
	if err := query.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&proposals).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch proposals", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  proposals,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (pc *ProposalController) GetProposal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var proposal models.Proposal
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&proposal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Proposal not found", nil)
	}

	return c.JSON(utils.SuccessResponse(proposal))
}

// UpdateProposal applies a partial update. Moving into Submitted stamps
// submitted_at once; later status changes leave it alone.
func (pc *ProposalController) UpdateProposal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var proposal models.Proposal
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&proposal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Proposal not found", nil)
	}

	var input struct {
		Title   *string    `json:"title" validate:"omitempty,max=300"`
		LeadID  *uint      `json:"lead_id"`
		Status  *string    `json:"status" validate:"omitempty,oneof=Draft 'In Review' Submitted Won Lost"`
		DueDate *time.Time `json:"due_date"`
		Amount  *float64   `json:"amount" validate:"omitempty,min=0"`
		Notes   *string    `json:"notes"`
	}
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.LeadID != nil {
		var count int64
		if err := pc.DB.Model(&models.Lead{}).
			Where("id = ? AND user_id = ?", *input.LeadID, user.ID).
			Count(&count).Error; err != nil || count == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Lead not found", nil)
		}
		proposal.LeadID = input.LeadID
	}

	if input.Title != nil {
		proposal.Title = *input.Title
	}
	if input.Status != nil {
		if *input.Status == "Submitted" && proposal.Status != "Submitted" && proposal.SubmittedAt == nil {
			now := time.Now()
			proposal.SubmittedAt = &now
		}
		proposal.Status = *input.Status
	}
	if input.DueDate != nil {
		proposal.DueDate = input.DueDate
	}
	if input.Amount != nil {
		proposal.Amount = *input.Amount
	}
	if input.Notes != nil {
		proposal.Notes = *input.Notes
	}

	if err := pc.DB.Save(&proposal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update proposal", err)
	}

	return c.JSON(utils.SuccessResponse(proposal))
}

func (pc *ProposalController) DeleteProposal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	result := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).Delete(&models.Proposal{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete proposal", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Proposal not found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Proposal deleted"})
}
