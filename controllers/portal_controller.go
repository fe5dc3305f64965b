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

type PortalController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewPortalController(db *gorm.DB, logger *log.Logger) *PortalController {
	return &PortalController{
		DB:     db,
		Logger: logger,
	}
}

// CreatePortal registers a procurement portal. The password is AES-encrypted
// before it touches the database and never serialized back out.
func (pc *PortalController) CreatePortal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name     string `json:"name" validate:"required,max=200"`
		URL      string `json:"url" validate:"omitempty,url"`
		Username string `json:"username" validate:"omitempty,max=200"`
		Password string `json:"password"`
		Notes    string `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	portal := models.Portal{
		UserID:   user.ID,
		Name:     input.Name,
		URL:      input.URL,
		Username: input.Username,
		Notes:    input.Notes,
	}
	if input.Password != "" {
		encrypted, err := utils.Encrypt(input.Password)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encrypt password", err)
		}
		portal.PasswordEncrypted = encrypted
	}

	if err := pc.DB.Create(&portal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create portal", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(portal))
}

func (pc *PortalController) GetPortals(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var portals []models.Portal
	if err := pc.DB.Where("user_id = ?", user.ID).Order("name asc").Find(&portals).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch portals", err)
	}

	return c.JSON(utils.SuccessResponse(portals))
}

func (pc *PortalController) GetPortal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var portal models.Portal
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&portal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Portal not found", nil)
	}

	return c.JSON(utils.SuccessResponse(portal))
}

// RevealPortalPassword decrypts and returns the stored portal password
func (pc *PortalController) RevealPortalPassword(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var portal models.Portal
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&portal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Portal not found", nil)
	}

	if portal.PasswordEncrypted == "" {
		return c.JSON(utils.SuccessResponse(fiber.Map{"password": ""}))
	}

	password, err := utils.Decrypt(portal.PasswordEncrypted)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to decrypt password", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"password": password}))
}

func (pc *PortalController) UpdatePortal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var portal models.Portal
	if err := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&portal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Portal not found", nil)
	}

	var input struct {
		Name          *string    `json:"name" validate:"omitempty,max=200"`
		URL           *string    `json:"url" validate:"omitempty,url"`
		Username      *string    `json:"username" validate:"omitempty,max=200"`
		Password      *string    `json:"password"`
		Notes         *string    `json:"notes"`
		LastCheckedAt *time.Time `json:"last_checked_at"`
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
		portal.Name = *input.Name
	}
	if input.URL != nil {
		portal.URL = *input.URL
	}
	if input.Username != nil {
		portal.Username = *input.Username
	}
	if input.Password != nil {
		if *input.Password == "" {
			portal.PasswordEncrypted = ""
		} else {
			encrypted, err := utils.Encrypt(*input.Password)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encrypt password", err)
			}
			portal.PasswordEncrypted = encrypted
		}
	}
	if input.Notes != nil {
		portal.Notes = *input.Notes
	}
	if input.LastCheckedAt != nil {
		portal.LastCheckedAt = input.LastCheckedAt
	}

	if err := pc.DB.Save(&portal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update portal", err)
	}

	return c.JSON(utils.SuccessResponse(portal))
}

func (pc *PortalController) DeletePortal(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	result := pc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).Delete(&models.Portal{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete portal", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Portal not found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Portal deleted"})
}
