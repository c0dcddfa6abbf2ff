package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/config"
	"referral-app-server/internal/handlers"
	"referral-app-server/internal/middleware"
	"referral-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	companyHandler := handlers.NewCompanyHandler(db)
	userHandler := handlers.NewUserHandler(db)
	examHandler := handlers.NewExamHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	convenioHandler := handlers.NewConvenioHandler(db)
	referralHandler := handlers.NewReferralHandler(db, cfg)
	checkupHandler := handlers.NewCheckupHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes: JWT first, then profile/scope resolution. A
	// profile outside the four-role set, or a parceiro/checkup profile
	// without a company, is rejected here for every route in the group.
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg), middleware.ScopeMiddleware(db))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Company management (admin and reception are company-agnostic)
		empresaRoutes := private.Group("/empresas")
		empresaRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRecepcao))
		{
			empresaRoutes.GET("", companyHandler.GetCompanies)
			empresaRoutes.POST("", companyHandler.CreateCompany)

			// Company + bootstrap login user, admin only
			empresaRoutes.POST("/register", middleware.RoleAuthMiddleware(models.RoleAdmin), companyHandler.RegisterCompany)
		}

		// Company-user administration (admin only)
		userRoutes := private.Group("/usuarios")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateCompanyUser)
			userRoutes.GET("", userHandler.GetCompanyUsers)
		}

		// Global exam catalog: everyone reads, admin writes
		exameRoutes := private.Group("/exames")
		{
			exameRoutes.GET("", examHandler.GetExams)
			exameRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), examHandler.CreateExam)
		}

		// Doctors and insurance plans: partner-owned, visible to the
		// global roles for referral creation and reports
		medicoRoutes := private.Group("/medicos")
		{
			medicoRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleParceiro, models.RoleAdmin, models.RoleRecepcao), doctorHandler.GetDoctors)
			medicoRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleParceiro), doctorHandler.CreateDoctor)
		}

		convenioRoutes := private.Group("/convenios")
		{
			convenioRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleParceiro, models.RoleAdmin, models.RoleRecepcao), convenioHandler.GetConvenios)
			convenioRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleParceiro), convenioHandler.CreateConvenio)
		}

		// Referrals
		encaminhamentoRoutes := private.Group("/encaminhamentos")
		{
			encaminhamentoRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleRecepcao, models.RoleAdmin), referralHandler.CreateReferral)

			encaminhamentoRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRecepcao, models.RoleParceiro), referralHandler.GetReferrals)

			encaminhamentoRoutes.GET("/stats", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRecepcao), referralHandler.GetReferralStats)

			// Reception status update (stepwise or override per config flag)
			encaminhamentoRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleRecepcao), referralHandler.UpdateReferralStatus)

			// Partner terminal transitions out of executado
			encaminhamentoRoutes.PATCH("/:id/intervencao", middleware.RoleAuthMiddleware(models.RoleParceiro), referralHandler.MarkIntervention)
			encaminhamentoRoutes.PATCH("/:id/acompanhamento", middleware.RoleAuthMiddleware(models.RoleParceiro), referralHandler.MarkFollowUp)
		}

		// Checkup batteries (checkup-kind companies)
		checkupRoutes := private.Group("/checkups")
		checkupRoutes.Use(middleware.RoleAuthMiddleware(models.RoleCheckup))
		{
			checkupRoutes.GET("", checkupHandler.GetCheckups)
			checkupRoutes.POST("", checkupHandler.CreateCheckup)
			checkupRoutes.POST("/:id/pacientes", checkupHandler.EnrollPatient)
		}

		pacienteRoutes := private.Group("/pacientes")
		pacienteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleCheckup))
		{
			pacienteRoutes.GET("", checkupHandler.GetPatients)
		}

		checkupPacienteRoutes := private.Group("/checkup-pacientes")
		checkupPacienteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleCheckup))
		{
			checkupPacienteRoutes.GET("", checkupHandler.GetEnrollments)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
