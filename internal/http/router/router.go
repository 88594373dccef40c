package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/handler/webhook"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	AdminAPIKey  string
	Limiter      middleware.Limiter
	Stripe       webhook.StripeVerifier
	Square       webhook.SquareVerifier
	Nylas        webhook.NylasVerifier
	Voice        webhook.VoiceProviders
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	webhooks := router.Group("/webhooks")
	if cfg.Limiter != nil {
		auth.Use(middleware.RateLimit(cfg.Limiter))
		webhooks.Use(middleware.RateLimit(cfg.Limiter))
	}

	authHandler := handler.NewAuthHandler(services.Auth(), services.Invitations(), cfg.DashboardURL)
	AuthRouter(auth, authHandler)

	WebhookRouter(webhooks, services.WebhookIngest(), cfg)

	requireAuth := middleware.RequireAuth(services.Auth())
	invitationHandler := handler.NewInvitationHandler(services.Invitations())
	orgHandler := handler.NewOrganizationHandler(services.Organizations(), services.Members())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/invites/validate", invitationHandler.Validate)

		orgs := v1.Group("/orgs", requireAuth)
		orgs.POST("", orgHandler.Create)
		orgs.GET("", orgHandler.ListMine)

		tenant := orgs.Group("/:org_id", middleware.RequireOrgMember(services.Organizations(), services.Members()))
		if cfg.Limiter != nil {
			tenant.Use(middleware.RateLimit(cfg.Limiter))
		}
		OrganizationRouter(tenant, orgHandler, invitationHandler)
		CRMRouter(tenant, services)
		CampaignRouter(tenant, services)
		EmailRouter(tenant.Group("/email"), handler.NewEmailHandler(services.Email()))
		BillingRouter(tenant.Group("/billing"), handler.NewBillingHandler(services.Billing()))
		SupportRouter(tenant.Group("/tickets"), handler.NewSupportHandler(services.Support()))

		admin := v1.Group("/admin", middleware.RequireAdmin(services.Auth(), cfg.AdminAPIKey))
		AdminRouter(admin, services, invitationHandler)
	}
}
