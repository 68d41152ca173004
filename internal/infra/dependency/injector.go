// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/config"
	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/application/usecase/account"
	"github.com/ledgerflow/backend/internal/application/usecase/auth"
	"github.com/ledgerflow/backend/internal/application/usecase/category"
	"github.com/ledgerflow/backend/internal/application/usecase/recurring"
	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/application/usecase/statementimport"
	"github.com/ledgerflow/backend/internal/application/usecase/transaction"
	"github.com/ledgerflow/backend/internal/infra/jobs"
	"github.com/ledgerflow/backend/internal/infra/server/router"
	"github.com/ledgerflow/backend/internal/integration/adapters"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerflow/backend/internal/integration/persistence"
)

// Injector holds the wired application graph.
type Injector struct {
	Config    *config.Config
	Router    *router.Router
	Scheduler *jobs.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The dbHealthChecker feeds the health endpoint so the router does not need
// the database handle itself.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	ruleRepo := persistence.NewRuleRepository(db)
	scheduleRepo := persistence.NewScheduleRepository(db)

	// Adapters/services
	clock := adapter.SystemClock{}
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	ruleGuard := adapters.NewRedisRuleGuard(redisClient)
	extractor := adapters.NewGeminiExtractor(cfg.Gemini.APIKey)

	// Auth use cases
	registerUseCase := auth.NewRegisterUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUseCase(userRepo, passwordService, tokenService)

	// Account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

	// Category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Rule engine and rule management use cases
	applyRulesUseCase := rule.NewApplyRulesUseCase(ruleRepo, categoryRepo, accountRepo, ruleGuard, clock)
	createRuleUseCase := rule.NewCreateRuleUseCase(ruleRepo)
	listRulesUseCase := rule.NewListRulesUseCase(ruleRepo)
	getRuleUseCase := rule.NewGetRuleUseCase(ruleRepo)
	updateRuleUseCase := rule.NewUpdateRuleUseCase(ruleRepo)
	deleteRuleUseCase := rule.NewDeleteRuleUseCase(ruleRepo)
	reorderRulesUseCase := rule.NewReorderRulesUseCase(ruleRepo)
	previewRuleUseCase := rule.NewPreviewRuleUseCase(transactionRepo)
	instantiateTemplateUseCase := rule.NewInstantiateTemplateUseCase(ruleRepo, categoryRepo)

	// Transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, applyRulesUseCase)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo)

	// Recurring schedule use cases
	createScheduleUseCase := recurring.NewCreateScheduleUseCase(scheduleRepo, accountRepo, categoryRepo)
	listSchedulesUseCase := recurring.NewListSchedulesUseCase(scheduleRepo)
	updateScheduleUseCase := recurring.NewUpdateScheduleUseCase(scheduleRepo, categoryRepo)
	deleteScheduleUseCase := recurring.NewDeleteScheduleUseCase(scheduleRepo)
	processScheduleUseCase := recurring.NewProcessScheduleUseCase(scheduleRepo, transactionRepo, accountRepo, clock)
	skipOccurrenceUseCase := recurring.NewSkipOccurrenceUseCase(scheduleRepo)
	setScheduleActiveUseCase := recurring.NewSetScheduleActiveUseCase(scheduleRepo)
	runDueSchedulesUseCase := recurring.NewRunDueSchedulesUseCase(scheduleRepo, processScheduleUseCase, clock)

	// Statement import
	importStatementUseCase := statementimport.NewImportStatementUseCase(extractor, createTransactionUseCase)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)
	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	ruleController := controller.NewRuleController(
		createRuleUseCase,
		listRulesUseCase,
		getRuleUseCase,
		updateRuleUseCase,
		deleteRuleUseCase,
		reorderRulesUseCase,
		previewRuleUseCase,
		instantiateTemplateUseCase,
	)
	recurringController := controller.NewRecurringController(
		createScheduleUseCase,
		listSchedulesUseCase,
		updateScheduleUseCase,
		deleteScheduleUseCase,
		processScheduleUseCase,
		skipOccurrenceUseCase,
		setScheduleActiveUseCase,
	)
	statementImportController := controller.NewStatementImportController(importStatementUseCase)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		categoryController,
		transactionController,
		ruleController,
		recurringController,
		statementImportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:    cfg,
		Router:    r,
		Scheduler: jobs.NewScheduler(runDueSchedulesUseCase),
	}
}
