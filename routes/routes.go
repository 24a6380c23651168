package routes

import (
	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/controllers"
	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/middlewares"
	"github.com/shanmdahanayaka/vehicle-rental-backend/repository"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"
	"github.com/shanmdahanayaka/vehicle-rental-backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.RefreshHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories & services
	bookingRepo := repository.NewBookingRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	audit := services.NewAuditService(db)
	notify := services.NewNotifier(cfg.Currency)
	bookingSvc := services.NewBookingService(db, bookingRepo, invoiceRepo, paymentRepo, cfg, audit, notify, hub)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	vehicleCtrl := controllers.NewVehicleController(db)
	packageCtrl := controllers.NewPackageController(db)
	policyCtrl := controllers.NewPolicyController(db)
	reviewCtrl := controllers.NewReviewController(db)
	bookingCtrl := controllers.NewBookingController(bookingSvc)
	workflowCtrl := controllers.NewWorkflowController(bookingSvc, cfg)
	invoiceCtrl := controllers.NewInvoiceController(bookingSvc)
	adminCtrl := controllers.NewAdminController(db, audit)

	authAny := middlewares.AuthMiddleware(db, cfg.JWTSecret, "")
	authManager := middlewares.AuthMiddleware(db, cfg.JWTSecret, entity.RoleManager)
	authAdmin := middlewares.AuthMiddleware(db, cfg.JWTSecret, entity.RoleAdmin)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", authAny)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public catalog
	r.GET("/vehicles", vehicleCtrl.List)
	r.GET("/vehicles/:id", vehicleCtrl.Detail)
	r.GET("/vehicles/:id/reviews", reviewCtrl.ListForVehicle)

	// Customer
	u := r.Group("/", authAny)
	{
		u.POST("/bookings", bookingCtrl.Create)
		u.GET("/bookings/:id", bookingCtrl.Detail)
		u.POST("/bookings/:id/cancel", bookingCtrl.Cancel)
		u.POST("/vehicles/:id/reviews", reviewCtrl.Create)
	}

	profile := r.Group("/profile", authAny)
	{
		profile.GET("/bookings", bookingCtrl.ListForMe)
	}

	// Staff (manager/admin) — booking workflow & catalog management
	staff := r.Group("/staff", authManager)
	{
		bookings := staff.Group("", middlewares.RequirePermission(db, entity.PermBookingsManage))
		{
			bookings.GET("/bookings", workflowCtrl.List)
			bookings.GET("/bookings/:id", workflowCtrl.Detail)
			bookings.POST("/bookings/:id/confirm", workflowCtrl.Confirm)
			bookings.POST("/bookings/:id/collect", workflowCtrl.Collect)
			bookings.POST("/bookings/:id/complete", workflowCtrl.Complete)
			bookings.POST("/bookings/:id/preview", workflowCtrl.Preview)
			bookings.POST("/bookings/:id/cancel", workflowCtrl.Cancel)
		}

		invoices := staff.Group("", middlewares.RequirePermission(db, entity.PermInvoicesManage))
		{
			invoices.POST("/bookings/:id/invoice", invoiceCtrl.Generate)
			invoices.GET("/invoices", invoiceCtrl.List)
			invoices.GET("/invoices/:id", invoiceCtrl.Detail)
			invoices.POST("/invoices/:id/payments", invoiceCtrl.RecordPayment)
			invoices.GET("/invoices/:id/payments", invoiceCtrl.ListPayments)
			invoices.POST("/invoices/:id/resend", invoiceCtrl.Resend)
		}

		catalog := staff.Group("", middlewares.RequirePermission(db, entity.PermVehiclesManage))
		{
			catalog.POST("/vehicles", vehicleCtrl.Create)
			catalog.PATCH("/vehicles/:id", vehicleCtrl.Update)
			catalog.PUT("/vehicles/:id/packages", vehicleCtrl.SetPackages)
			catalog.PUT("/vehicles/:id/policies", vehicleCtrl.SetPolicies)

			catalog.GET("/packages", packageCtrl.List)
			catalog.POST("/packages", packageCtrl.Create)
			catalog.PATCH("/packages/:id", packageCtrl.Update)

			catalog.GET("/policies", policyCtrl.List)
			catalog.POST("/policies", policyCtrl.Create)
			catalog.PATCH("/policies/:id", policyCtrl.Update)
		}
	}

	// Admin
	admin := r.Group("/admin", authAdmin)
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)

		users := admin.Group("", middlewares.RequirePermission(db, entity.PermUsersManage))
		{
			users.GET("/users", adminCtrl.Users)
			users.PATCH("/users/:id", adminCtrl.UpdateUser)
			users.GET("/users/:id/permissions", adminCtrl.UserPermissions)
			users.PUT("/users/:id/permissions", adminCtrl.SetPermission)
		}

		admin.GET("/audit", middlewares.RequirePermission(db, entity.PermAuditView), adminCtrl.AuditLogs)
	}

	// Realtime refresh feed for staff UIs
	r.GET("/ws/refresh", middlewares.WSAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		role := c.GetString("role")
		if entity.RoleRank(role) < entity.RoleRank(entity.RoleManager) {
			c.JSON(403, gin.H{"ok": false, "error": "forbidden"})
			return
		}
		hub.HandleWS(c)
	})
}
