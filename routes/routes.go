package routes

import (
	"log"
	"os"

	"capturehub/config"
	controller "capturehub/controllers"
	"capturehub/middleware"
	"capturehub/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, hub *controller.NotificationHub) {
	keywords := scoring.DefaultKeywords()
	scorer := scoring.NewScorer(keywords)

	leadController := controller.NewLeadController(db, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	scoreController := controller.NewScoreController(db, scorer, log.New(os.Stdout, "SCORE: ", log.LstdFlags))
	partnerController := controller.NewPartnerController(db, keywords, log.New(os.Stdout, "PARTNER: ", log.LstdFlags))
	proposalController := controller.NewProposalController(db, log.New(os.Stdout, "PROPOSAL: ", log.LstdFlags))
	portalController := controller.NewPortalController(db, log.New(os.Stdout, "PORTAL: ", log.LstdFlags))
	eventController := controller.NewEventController(db, log.New(os.Stdout, "EVENT: ", log.LstdFlags))
	companyController := controller.NewCompanyController(db, log.New(os.Stdout, "COMPANY: ", log.LstdFlags))
	notificationController := controller.NewNotificationController(db, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Dashboard routes
	api.Get("/dashboard/stats", dashboardController.GetPipelineStats)

	// Lead routes
	lead := api.Group("/leads")
	lead.Post("/", leadController.CreateLead)
	lead.Get("/", leadController.GetLeads)
	lead.Get("/:id", leadController.GetLead)
	lead.Put("/:id", leadController.UpdateLead)
	lead.Delete("/:id", leadController.DeleteLead)
	lead.Post("/:id/attachments", leadController.UploadAttachment)
	lead.Post("/:id/activities", leadController.CreateActivity)
	lead.Put("/:id/activities/:activityID", leadController.UpdateActivity)
	lead.Delete("/:id/activities/:activityID", leadController.DeleteActivity)

	// Scoring route with rate limiting
	lead.Post("/:id/score", middleware.ScoreRateLimiter(), scoreController.ScoreLead)

	// Partner routes
	partner := api.Group("/partners")
	partner.Post("/", partnerController.CreatePartner)
	partner.Get("/", partnerController.GetPartners)
	partner.Get("/:id", partnerController.GetPartner)
	partner.Put("/:id", partnerController.UpdatePartner)
	partner.Delete("/:id", partnerController.DeletePartner)
	partner.Post("/:id/capability-statement", partnerController.UploadCapabilityStatement)

	// Proposal routes
	proposal := api.Group("/proposals")
	proposal.Post("/", proposalController.CreateProposal)
	proposal.Get("/", proposalController.GetProposals)
	proposal.Get("/:id", proposalController.GetProposal)
	proposal.Put("/:id", proposalController.UpdateProposal)
	proposal.Delete("/:id", proposalController.DeleteProposal)

	// Portal routes
	portal := api.Group("/portals")
	portal.Post("/", portalController.CreatePortal)
	portal.Get("/", portalController.GetPortals)
	portal.Get("/:id", portalController.GetPortal)
	portal.Get("/:id/password", portalController.RevealPortalPassword)
	portal.Put("/:id", portalController.UpdatePortal)
	portal.Delete("/:id", portalController.DeletePortal)

	// Event routes
	event := api.Group("/events")
	event.Post("/", eventController.CreateEvent)
	event.Get("/", eventController.GetEvents)
	event.Get("/:id", eventController.GetEvent)
	event.Put("/:id", eventController.UpdateEvent)
	event.Delete("/:id", eventController.DeleteEvent)

	// Company profile routes
	api.Get("/company", companyController.GetCompany)
	api.Put("/company", companyController.UpdateCompany)

	// Notification routes
	api.Get("/notifications", notificationController.GetNotifications)

	// WebSocket route for live reminder notifications
	app.Get("/api/v1/notifications/stream", websocket.New(func(c *websocket.Conn) {
		hub.HandleWS(c)
	}))

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, hub *controller.NotificationHub) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": config.AppConfig.Environment,
		})
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db, hub)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
