package controller

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"capturehub/config"
	"capturehub/models"
	"capturehub/scoring"
	"capturehub/utils"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerController struct {
	DB       *gorm.DB
	Keywords scoring.Keywords
	Logger   *log.Logger
}

func NewPartnerController(db *gorm.DB, keywords scoring.Keywords, logger *log.Logger) *PartnerController {
	return &PartnerController{
		DB:       db,
		Keywords: keywords,
		Logger:   logger,
	}
}

// CreatePartner registers a candidate teaming partner
func (pc *PartnerController) CreatePartner(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name              string   `json:"name" validate:"required,max=200"`
		ContactName       string   `json:"contact_name" validate:"omitempty,max=200"`
		ContactEmail      string   `json:"contact_email" validate:"omitempty,email"`
		Website           string   `json:"website" validate:"omitempty,url"`
		Status            string   `json:"status" validate:"omitempty,oneof=Active Vetted Blacklisted Prospective"`
		PerformanceRating int      `json:"performance_rating" validate:"omitempty,min=1,max=100"`
		Skills            []string `json:"skills"`
		Agencies          []string `json:"agencies"`
		NAICSCodes        []string `json:"naics_codes"`
		Capabilities      string   `json:"capabilities"`
		Notes             string   `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.ContactEmail != "" {
		if err := checkmail.ValidateFormat(input.ContactEmail); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact email", err)
		}
	}

	partner := models.Partner{
		UserID:       user.ID,
		Name:         input.Name,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Website:      input.Website,
		Capabilities: input.Capabilities,
		Notes:        input.Notes,
		Skills:       scoring.UnionStrings(nil, input.Skills),
		Agencies:     scoring.UnionStrings(nil, input.Agencies),
		NAICSCodes:   scoring.UnionStrings(nil, input.NAICSCodes),
	}
	if input.Status != "" {
		partner.Status = input.Status
	}
	if input.PerformanceRating != 0 {
		partner.PerformanceRating = input.PerformanceRating
	}

	if err := pc.DB.Create(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create partner", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(partner))
}

// GetPartners returns paginated partners with an optional status filter
func (pc *PartnerController) GetPartners(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	query := pc.DB.Model(&models.Partner{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count partners", err)
	}

	var partners []models.Partner
	if err := query.
		Order("name asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&partners).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch partners", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  partners,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (pc *PartnerController) GetPartner(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var partner models.Partner
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Partner not found", nil)
	}

	return c.JSON(utils.SuccessResponse(partner))
}

// UpdatePartner applies a partial update; unknown fields are rejected.
// Tag-set fields replace wholesale here; the capability-statement upload is
// the additive path.
func (pc *PartnerController) UpdatePartner(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var partner models.Partner
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Partner not found", nil)
	}

	var input struct {
		Name              *string   `json:"name" validate:"omitempty,max=200"`
		ContactName       *string   `json:"contact_name" validate:"omitempty,max=200"`
		ContactEmail      *string   `json:"contact_email" validate:"omitempty,email"`
		Website           *string   `json:"website" validate:"omitempty,url"`
		Status            *string   `json:"status" validate:"omitempty,oneof=Active Vetted Blacklisted Prospective"`
		PerformanceRating *int      `json:"performance_rating" validate:"omitempty,min=1,max=100"`
		Skills            *[]string `json:"skills"`
		Agencies          *[]string `json:"agencies"`
		NAICSCodes        *[]string `json:"naics_codes"`
		Capabilities      *string   `json:"capabilities"`
		Notes             *string   `json:"notes"`
	}
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.ContactEmail != nil && *input.ContactEmail != "" {
		if err := checkmail.ValidateFormat(*input.ContactEmail); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact email", err)
		}
	}

	if input.Name != nil {
		partner.Name = *input.Name
	}
	if input.ContactName != nil {
		partner.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		partner.ContactEmail = *input.ContactEmail
	}
	if input.Website != nil {
		partner.Website = *input.Website
	}
	if input.Status != nil {
		partner.Status = *input.Status
	}
	if input.PerformanceRating != nil {
		partner.PerformanceRating = *input.PerformanceRating
	}
	if input.Skills != nil {
		partner.Skills = scoring.UnionStrings(nil, *input.Skills)
	}
	if input.Agencies != nil {
		partner.Agencies = scoring.UnionStrings(nil, *input.Agencies)
	}
	if input.NAICSCodes != nil {
		partner.NAICSCodes = scoring.UnionStrings(nil, *input.NAICSCodes)
	}
	if input.Capabilities != nil {
		partner.Capabilities = *input.Capabilities
	}
	if input.Notes != nil {
		partner.Notes = *input.Notes
	}

	if err := pc.DB.Save(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update partner", err)
	}

	return c.JSON(utils.SuccessResponse(partner))
}

func (pc *PartnerController) DeletePartner(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	result := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).Delete(&models.Partner{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete partner", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Partner not found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Partner deleted"})
}

// UploadCapabilityStatement stores an uploaded capability statement,
// extracts NAICS codes, agencies, and skills from its text, and unions them
// into the partner's tag sets. Re-uploading the same document is a no-op.
func (pc *PartnerController) UploadCapabilityStatement(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var partner models.Partner
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Partner not found", nil)
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

	text, err := utils.ExtractAttachmentText(storagePath)
	if err != nil {
		pc.Logger.Printf("Could not extract text from %s: %v", file.Filename, err)
		_ = os.Remove(storagePath)
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Could not extract text from document", err)
	}

	extraction := scoring.ExtractCapabilities(text, pc.Keywords)
	scoring.MergeExtraction(&partner, extraction)

	if err := pc.DB.Save(&partner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update partner", err)
	}

	pc.Logger.Printf("Merged capability extraction into partner %d (%d naics, %d agencies, %d skills)",
		partner.ID, len(extraction.NAICS), len(extraction.Agencies), len(extraction.Skills))

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"partner":    partner,
		"extraction": extraction,
	}))
}
