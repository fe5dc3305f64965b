package controller

import (
	"bytes"
	"encoding/json"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"capturehub/config"
	"capturehub/models"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLeadController(db *gorm.DB, logger *log.Logger) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: logger,
	}
}

// CreateLead creates a new lead with validation
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Title             string     `json:"title" validate:"required,max=300"`
		Agency            string     `json:"agency" validate:"omitempty,max=200"`
		Description       string     `json:"description"`
		DealType          string     `json:"deal_type" validate:"omitempty,max=50"`
		Sector            string     `json:"sector" validate:"omitempty,max=100"`
		Department        string     `json:"department" validate:"omitempty,max=200"`
		OpportunityStatus string     `json:"opportunity_status" validate:"omitempty,oneof=Identified Pursuing Capture Proposal Won Lost"`
		SolicitationNo    string     `json:"solicitation_no" validate:"omitempty,max=100"`
		EstimatedValue    float64    `json:"estimated_value" validate:"omitempty,min=0"`
		EstimatedRFPDate  *time.Time `json:"estimated_rfp_date"`
		AwardDate         *time.Time `json:"award_date"`
		CloseDate         *time.Time `json:"close_date"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	lead := models.Lead{
		UserID:            user.ID,
		Title:             input.Title,
		Agency:            input.Agency,
		Description:       input.Description,
		DealType:          input.DealType,
		Sector:            input.Sector,
		Department:        input.Department,
		SolicitationNo:    input.SolicitationNo,
		EstimatedValue:    input.EstimatedValue,
		EstimatedRFPDate:  input.EstimatedRFPDate,
		AwardDate:         input.AwardDate,
		CloseDate:         input.CloseDate,
	}
	if input.OpportunityStatus != "" {
		lead.OpportunityStatus = input.OpportunityStatus
	}

	if err := lc.DB.Create(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lead", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(lead))
}

// GetLeads returns paginated list of leads with filters
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	// Pagination
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	query := lc.DB.Model(&models.Lead{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("opportunity_status = ?", status)
	}
	if sector := c.Query("sector"); sector != "" {
		query = query.Where("sector = ?", sector)
	}
	if agency := c.Query("agency"); agency != "" {
		query = query.Where("agency ILIKE ?", "%"+agency+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count leads", err)
	}

	var leads []models.Lead
	if err := query.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetLead returns a single lead with its activities, attachments, and
// suggested partners
func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("lead_attachments.id asc") }).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("lead_activities.id asc") }).
		Preload("SuggestedPartners", func(db *gorm.DB) *gorm.DB { return db.Order("suggested_partners.position asc") }).
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

// leadUpdateInput is the allow-listed field set for partial lead updates.
// Score fields are deliberately absent; only the scorer writes those.
type leadUpdateInput struct {
	Title             *string    `json:"title" validate:"omitempty,max=300"`
	Agency            *string    `json:"agency" validate:"omitempty,max=200"`
	Description       *string    `json:"description"`
	DealType          *string    `json:"deal_type" validate:"omitempty,max=50"`
	Sector            *string    `json:"sector" validate:"omitempty,max=100"`
	Department        *string    `json:"department" validate:"omitempty,max=200"`
	OpportunityStatus *string    `json:"opportunity_status" validate:"omitempty,oneof=Identified Pursuing Capture Proposal Won Lost"`
	SolicitationNo    *string    `json:"solicitation_no" validate:"omitempty,max=100"`
	EstimatedValue    *float64   `json:"estimated_value" validate:"omitempty,min=0"`
	EstimatedRFPDate  *time.Time `json:"estimated_rfp_date"`
	AwardDate         *time.Time `json:"award_date"`
	CloseDate         *time.Time `json:"close_date"`
}

// UpdateLead applies a partial update; unknown fields are rejected
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	var input leadUpdateInput
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Agency != nil {
		updates["agency"] = *input.Agency
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DealType != nil {
		updates["deal_type"] = *input.DealType
	}
	if input.Sector != nil {
		updates["sector"] = *input.Sector
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}
	if input.OpportunityStatus != nil {
		updates["opportunity_status"] = *input.OpportunityStatus
	}
	if input.SolicitationNo != nil {
		updates["solicitation_no"] = *input.SolicitationNo
	}
	if input.EstimatedValue != nil {
		updates["estimated_value"] = *input.EstimatedValue
	}
	if input.EstimatedRFPDate != nil {
		updates["estimated_rfp_date"] = *input.EstimatedRFPDate
	}
	if input.AwardDate != nil {
		updates["award_date"] = *input.AwardDate
	}
	if input.CloseDate != nil {
		updates["close_date"] = *input.CloseDate
	}

	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No updatable fields provided", nil)
	}

	if err := lc.DB.Model(&lead).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lead", err)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

// DeleteLead removes a lead and its owned children
func (lc *LeadController) DeleteLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.LeadActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.LeadAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.SuggestedPartner{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lead).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete lead", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Lead deleted"})
}

// UploadAttachment stores an uploaded file on local disk and records it
func (lc *LeadController) UploadAttachment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing file upload", err)
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	storagePath := filepath.Join(config.AppConfig.UploadDir, storedName)
	if err := c.SaveFile(file, storagePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store file", err)
	}

	attachment := models.LeadAttachment{
		LeadID:      lead.ID,
		Name:        file.Filename,
		StoragePath: storagePath,
		SizeBytes:   file.Size,
	}
	if err := lc.DB.Create(&attachment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record attachment", err)
	}

	lc.Logger.Printf("Stored attachment %s for lead %d", file.Filename, lead.ID)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(attachment))
}

// CreateActivity adds a follow-up task to a lead
func (lc *LeadController) CreateActivity(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	var input struct {
		Type    string     `json:"type" validate:"omitempty,max=50"`
		Note    string     `json:"note"`
		DueDate *time.Time `json:"due_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	activity := models.LeadActivity{
		LeadID:  lead.ID,
		Note:    input.Note,
		DueDate: input.DueDate,
	}
	if input.Type != "" {
		activity.Type = input.Type
	}

	if err := lc.DB.Create(&activity).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create activity", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(activity))
}

// UpdateActivity edits a follow-up task. Changing the due date resets the
// reminder flags so the new deadline gets its own reminders.
func (lc *LeadController) UpdateActivity(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	var activity models.LeadActivity
	if err := lc.DB.Where("id = ? AND lead_id = ?", c.Params("activityID"), lead.ID).First(&activity).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Activity not found", nil)
	}

	var input struct {
		Type    *string    `json:"type" validate:"omitempty,max=50"`
		Note    *string    `json:"note"`
		DueDate *time.Time `json:"due_date"`
		Status  *string    `json:"status" validate:"omitempty,oneof=Pending Done"`
	}
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	updates := map[string]interface{}{}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
		updates["five_hour_reminder_sent"] = false
		updates["one_hour_reminder_sent"] = false
	}

	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No updatable fields provided", nil)
	}

	if err := lc.DB.Model(&activity).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update activity", err)
	}

	return c.JSON(utils.SuccessResponse(activity))
}

// DeleteActivity removes a follow-up task
func (lc *LeadController) DeleteActivity(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	result := lc.DB.Where("id = ? AND lead_id = ?", c.Params("activityID"), lead.ID).Delete(&models.LeadActivity{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete activity", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Activity not found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Activity deleted"})
}
