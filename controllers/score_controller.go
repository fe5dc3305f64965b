package controller

import (
	"log"
	"time"

	"capturehub/models"
	"capturehub/scoring"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScoreController struct {
	DB     *gorm.DB
	Scorer *scoring.Scorer
	Logger *log.Logger
}

func NewScoreController(db *gorm.DB, scorer *scoring.Scorer, logger *log.Logger) *ScoreController {
	return &ScoreController{
		DB:     db,
		Scorer: scorer,
		Logger: logger,
	}
}

// ScoreLead runs the deterministic opportunity scorer for one lead and
// persists the result onto it. The company capability statement is re-read
// on every call; attachment text extraction and a missing company profile
// degrade to empty text rather than failing the request.
func (sc *ScoreController) ScoreLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := sc.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("lead_attachments.id asc") }).
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	// Company capability document, read fresh on every scoring call
	var companyText string
	var profile models.CompanyProfile
	if err := sc.DB.First(&profile).Error; err != nil {
		sc.Logger.Printf("No company profile found, scoring against empty capability text: %v", err)
	} else {
		companyText = profile.CapabilityStatement
	}

	attachmentTexts := make([]string, 0, len(lead.Attachments))
	for _, attachment := range lead.Attachments {
		text, err := utils.ExtractAttachmentText(attachment.StoragePath)
		if err != nil {
			// Unreadable attachment degrades to skipped, never aborts scoring
			sc.Logger.Printf("Skipping attachment %d (%s): %v", attachment.ID, attachment.Name, err)
			continue
		}
		attachmentTexts = append(attachmentTexts, utils.TruncateText(text, utils.MaxAttachmentChars))
	}

	var partners []models.Partner
	if err := sc.DB.
		Where("user_id = ? AND status IN ?", user.ID, []string{
			models.PartnerStatusVetted,
			models.PartnerStatusActive,
			models.PartnerStatusProspective,
		}).
		Order("id asc").
		Find(&partners).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch partners", err)
	}

	opportunityText := scoring.BuildOpportunityText(lead, attachmentTexts)
	result := sc.Scorer.Score(opportunityText, companyText, partners)

	// Persist score fields and the replacement suggested-partner list in one
	// transaction; a failed write leaves the lead untouched
	now := time.Now()
	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Lead{}).Where("id = ?", lead.ID).Updates(map[string]interface{}{
			"ai_score":          result.CompanyScore,
			"ai_recommendation": result.TeamRecommendation,
			"team_score":        result.TeamScore,
			"last_scored_at":    now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.SuggestedPartner{}).Error; err != nil {
			return err
		}
		for i, sp := range result.SuggestedPartners {
			row := models.SuggestedPartner{
				LeadID:      lead.ID,
				PartnerID:   sp.PartnerID,
				Name:        sp.Name,
				Score:       sp.Score,
				Probability: sp.Probability,
				Reason:      sp.Reason,
				Position:    i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to persist score", err)
	}

	logrus.WithFields(logrus.Fields{
		"lead_id":       lead.ID,
		"company_score": result.CompanyScore,
		"team_score":    result.TeamScore,
		"recommend":     result.TeamRecommendation,
		"partners":      len(result.SuggestedPartners),
	}).Info("lead scored")

	return c.JSON(utils.SuccessResponse(result))
}
