// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/ledgerflow/backend/internal/application/usecase/account"
	"github.com/ledgerflow/backend/internal/application/usecase/auth"
	"github.com/ledgerflow/backend/internal/application/usecase/category"
	"github.com/ledgerflow/backend/internal/application/usecase/recurring"
	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/application/usecase/statementimport"
	"github.com/ledgerflow/backend/internal/application/usecase/transaction"
	"github.com/ledgerflow/backend/internal/infra/server/router"
	"github.com/ledgerflow/backend/internal/integration/adapters"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerflow/backend/internal/integration/persistence"
	"github.com/ledgerflow/backend/internal/integration/persistence/model"
	"github.com/ledgerflow/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int
	testDB         *mock.Db
	testClock      *mock.Clock
)

// InitializeTestSuite sets up global resources before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario wires the scenario context and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":               &model.UserModel{},
			"accounts":            &model.AccountModel{},
			"categories":          &model.CategoryModel{},
			"transactions":        &model.TransactionModel{},
			"rules":               &model.RuleModel{},
			"recurring_schedules": &model.RecurringScheduleModel{},
		}),
	}

	testDB = test.db
	if testClock == nil {
		testClock = mock.NewClock()
	}
	test.clock = testClock

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return c, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^an account exists with name "([^"]*)" and type "([^"]*)"$`, test.anAccountExistsWithNameAndType)
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a rule exists named "([^"]*)" matching description contains "([^"]*)" with priority (\d+)$`, test.aRuleExistsMatchingDescription)
	ctx.Given(`^the rule "([^"]*)" has stop on match enabled$`, test.theRuleHasStopOnMatchEnabled)
	ctx.Given(`^a monthly schedule exists named "([^"]*)" due on "([^"]*)"$`, test.aMonthlyScheduleExistsDueOn)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// startServer wires the full application graph against the in-memory
// database, miniredis and the settable clock, then serves it on the test
// port. The graph matches the production injector except for the adapters
// swapped for test doubles.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			db := testDB.DbConn

			userRepo := persistence.NewUserRepository(db)
			accountRepo := persistence.NewAccountRepository(db)
			categoryRepo := persistence.NewCategoryRepository(db)
			transactionRepo := persistence.NewTransactionRepository(db)
			ruleRepo := persistence.NewRuleRepository(db)
			scheduleRepo := persistence.NewScheduleRepository(db)

			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute)
			ruleGuard := adapters.NewRedisRuleGuard(mock.NewRedis())
			extractor := adapters.NewGeminiExtractor("")

			registerUseCase := auth.NewRegisterUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUseCase(userRepo, passwordService, tokenService)

			createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
			listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
			updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
			deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

			applyRulesUseCase := rule.NewApplyRulesUseCase(ruleRepo, categoryRepo, accountRepo, ruleGuard, testClock)
			createRuleUseCase := rule.NewCreateRuleUseCase(ruleRepo)
			listRulesUseCase := rule.NewListRulesUseCase(ruleRepo)
			getRuleUseCase := rule.NewGetRuleUseCase(ruleRepo)
			updateRuleUseCase := rule.NewUpdateRuleUseCase(ruleRepo)
			deleteRuleUseCase := rule.NewDeleteRuleUseCase(ruleRepo)
			reorderRulesUseCase := rule.NewReorderRulesUseCase(ruleRepo)
			previewRuleUseCase := rule.NewPreviewRuleUseCase(transactionRepo)
			instantiateTemplateUseCase := rule.NewInstantiateTemplateUseCase(ruleRepo, categoryRepo)

			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, applyRulesUseCase)
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
			updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo)

			createScheduleUseCase := recurring.NewCreateScheduleUseCase(scheduleRepo, accountRepo, categoryRepo)
			listSchedulesUseCase := recurring.NewListSchedulesUseCase(scheduleRepo)
			updateScheduleUseCase := recurring.NewUpdateScheduleUseCase(scheduleRepo, categoryRepo)
			deleteScheduleUseCase := recurring.NewDeleteScheduleUseCase(scheduleRepo)
			processScheduleUseCase := recurring.NewProcessScheduleUseCase(scheduleRepo, transactionRepo, accountRepo, testClock)
			skipOccurrenceUseCase := recurring.NewSkipOccurrenceUseCase(scheduleRepo)
			setScheduleActiveUseCase := recurring.NewSetScheduleActiveUseCase(scheduleRepo)

			importStatementUseCase := statementimport.NewImportStatementUseCase(extractor, createTransactionUseCase)

			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
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
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to become reachable.
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
