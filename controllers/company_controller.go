package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"capturehub/models"
	"capturehub/scoring"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CompanyController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCompanyController(db *gorm.DB, logger *log.Logger) *CompanyController {
	return &CompanyController{
		DB:     db,
		Logger: logger,
	}
}

// GetCompany returns the single company profile, creating an empty one on
// first read
func (cc *CompanyController) GetCompany(c *fiber.Ctx) error {
	var profile models.CompanyProfile
	if err := cc.DB.First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch company profile", err)
		}
		if err := cc.DB.Create(&profile).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create company profile", err)
		}
	}

	return c.JSON(utils.SuccessResponse(profile))
}

// UpdateCompany applies a partial update to the singleton profile. The next
// scoring call picks up the new capability statement automatically.
func (cc *CompanyController) UpdateCompany(c *fiber.Ctx) error {
	var profile models.CompanyProfile
	if err := cc.DB.First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch company profile", err)
		}
		if err := cc.DB.Create(&profile).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create company profile", err)
		}
	}

	var input struct {
		Name                *string   `json:"name" validate:"omitempty,max=300"`
		UEI                 *string   `json:"uei" validate:"omitempty,max=20"`
		CageCode            *string   `json:"cage_code" validate:"omitempty,max=20"`
		Website             *string   `json:"website" validate:"omitempty,url"`
		Address             *string   `json:"address" validate:"omitempty,max=500"`
		NAICSCodes          *[]string `json:"naics_codes"`
		Certifications      *[]string `json:"certifications"`
		CapabilityStatement *string   `json:"capability_statement"`
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
		profile.Name = *input.Name
	}
	if input.UEI != nil {
		profile.UEI = *input.UEI
	}
	if input.CageCode != nil {
		profile.CageCode = *input.CageCode
	}
	if input.Website != nil {
		profile.Website = *input.Website
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.NAICSCodes != nil {
		profile.NAICSCodes = scoring.UnionStrings(nil, *input.NAICSCodes)
	}
	if input.Certifications != nil {
		profile.Certifications = scoring.UnionStrings(nil, *input.Certifications)
	}
	if input.CapabilityStatement != nil {
		profile.CapabilityStatement = *input.CapabilityStatement
	}

	if err := cc.DB.Save(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update company profile", err)
	}

	return c.JSON(utils.SuccessResponse(profile))
}
