// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerflow/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                    *gin.Engine
	healthController          *controller.HealthController
	authController            *controller.AuthController
	accountController         *controller.AccountController
	categoryController        *controller.CategoryController
	transactionController     *controller.TransactionController
	ruleController            *controller.RuleController
	recurringController       *controller.RecurringController
	statementImportController *controller.StatementImportController
	loginRateLimiter          *middleware.RateLimiter
	authMiddleware            *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	ruleController *controller.RuleController,
	recurringController *controller.RecurringController,
	statementImportController *controller.StatementImportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:          healthController,
		authController:            authController,
		accountController:         accountController,
		categoryController:        categoryController,
		transactionController:     transactionController,
		ruleController:            ruleController,
		recurringController:       recurringController,
		statementImportController: statementImportController,
		loginRateLimiter:          loginRateLimiter,
		authMiddleware:            authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.PATCH("/:id", r.accountController.Update)
				accounts.DELETE("/:id", r.accountController.Delete)
			}
		}

		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				if r.statementImportController != nil {
					transactions.POST("/import", r.statementImportController.Import)
				}
				transactions.GET("/:id", r.transactionController.Get)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.ruleController != nil && r.authMiddleware != nil {
			rules := v1.Group("/rules")
			rules.Use(r.authMiddleware.Authenticate())
			{
				rules.GET("", r.ruleController.List)
				rules.POST("", r.ruleController.Create)
				// Static segments before the :id wildcard
				rules.PUT("/reorder", r.ruleController.Reorder)
				rules.POST("/preview", r.ruleController.Preview)
				rules.GET("/templates", r.ruleController.ListTemplates)
				rules.POST("/templates/:id", r.ruleController.InstantiateTemplate)
				rules.GET("/:id", r.ruleController.Get)
				rules.PATCH("/:id", r.ruleController.Update)
				rules.DELETE("/:id", r.ruleController.Delete)
			}
		}

		if r.recurringController != nil && r.authMiddleware != nil {
			recurring := v1.Group("/recurring")
			recurring.Use(r.authMiddleware.Authenticate())
			{
				recurring.GET("", r.recurringController.List)
				recurring.POST("", r.recurringController.Create)
				recurring.PATCH("/:id", r.recurringController.Update)
				recurring.DELETE("/:id", r.recurringController.Delete)
				recurring.POST("/:id/process", r.recurringController.Process)
				recurring.POST("/:id/skip", r.recurringController.Skip)
				recurring.POST("/:id/pause", r.recurringController.Pause)
				recurring.POST("/:id/resume", r.recurringController.Resume)
			}
		}
	}
}
