package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/internal/domain/entity"
	"github.com/ledgerflow/backend/internal/integration/persistence/model"
	"github.com/ledgerflow/backend/test/integration/mock"
)

type testContext struct {
	uri     string
	headers map[string]string
	client  *http.Client
	db      *mock.Db
	clock   *mock.Clock

	response *response

	accessToken       string
	currentUserID     uuid.UUID
	currentUserEmail  string
	currentAccountID  uuid.UUID
	currentCategoryID uuid.UUID
	currentScheduleID uuid.UUID
	ruleIDs           map[string]uuid.UUID
	lastRuleID        uuid.UUID
	lastID            uuid.UUID
}

type response struct {
	status int
	body   any
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.currentUserEmail = ""
	t.currentAccountID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentScheduleID = uuid.Nil
	t.ruleIDs = make(map[string]uuid.UUID)
	t.lastRuleID = uuid.Nil
	t.lastID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
	t.clock.Set(time.Now().UTC())
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

// Setup steps

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password)
}

func (t *testContext) createUser(email, password string) error {
	userID := uuid.New()
	t.currentUserID = userID
	t.currentUserEmail = email

	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         "Test User",
		PasswordHash: hashPassword(password),
		Currency:     "USD",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) iAmLoggedInAs(email string) error {
	var user model.UserModel
	err := t.db.DbConn.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := t.createUser(email, "DefaultPass123!"); err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else {
		t.currentUserID = user.ID
		t.currentUserEmail = user.Email
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": t.currentUserID.String(),
		"email":   email,
		"exp":     jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":     jwt.NewNumericDate(now),
		"nbf":     jwt.NewNumericDate(now),
		"iss":     "ledgerflow",
		"sub":     t.currentUserID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) anAccountExistsWithNameAndType(name, accountType string) error {
	accountID := uuid.New()
	t.currentAccountID = accountID

	account := &model.AccountModel{
		ID:        accountID,
		UserID:    t.currentUserID,
		Name:      name,
		Type:      accountType,
		Balance:   decimal.NewFromInt(1000),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return t.db.DbConn.Create(account).Error
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID

	category := &model.CategoryModel{
		ID:        categoryID,
		UserID:    t.currentUserID,
		Name:      name,
		Color:     "#FF5722",
		Icon:      "tag",
		Type:      categoryType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return t.db.DbConn.Create(category).Error
}

func (t *testContext) aRuleExistsMatchingDescription(name, substring string, priority int) error {
	ruleID := uuid.New()
	t.ruleIDs[name] = ruleID
	t.lastRuleID = ruleID

	categoryID := t.currentCategoryID
	ruleModel := &model.RuleModel{
		ID:     ruleID,
		UserID: t.currentUserID,
		Name:   name,
		Conditions: model.ConditionsJSON{
			{
				Field:    entity.ConditionFieldDescription,
				Operator: entity.OperatorContains,
				Value:    substring,
			},
		},
		Actions: model.ActionsJSON{
			{
				Type:       entity.ActionSetCategory,
				CategoryID: &categoryID,
			},
		},
		Priority:  priority,
		IsActive:  true,
		Scope:     "all",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return t.db.DbConn.Create(ruleModel).Error
}

func (t *testContext) theRuleHasStopOnMatchEnabled(name string) error {
	ruleID, ok := t.ruleIDs[name]
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}
	return t.db.DbConn.Model(&model.RuleModel{}).
		Where("id = ?", ruleID).
		Update("stop_on_match", true).Error
}

func (t *testContext) aMonthlyScheduleExistsDueOn(name, dateStr string) error {
	dueDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	scheduleID := uuid.New()
	t.currentScheduleID = scheduleID

	dayOfMonth := dueDate.Day()
	schedule := &model.RecurringScheduleModel{
		ID:          scheduleID,
		UserID:      t.currentUserID,
		Description: name,
		Amount:      decimal.NewFromInt(50),
		Type:        "expense",
		AccountID:   t.currentAccountID,
		Frequency:   "monthly",
		Interval:    1,
		DayOfMonth:  &dayOfMonth,
		StartDate:   dueDate,
		NextDate:    dueDate,
		IsActive:    true,
		AutoProcess: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return t.db.DbConn.Create(schedule).Error
}

func (t *testContext) theCurrentDateIs(dateStr string) error {
	current, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	t.clock.Set(current.UTC())
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

// Request steps

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{account_id}}", t.currentAccountID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{schedule_id}}", t.currentScheduleID.String())
	content = strings.ReplaceAll(content, "{{rule_id}}", t.lastRuleID.String())
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	for name, id := range t.ruleIDs {
		content = strings.ReplaceAll(content, "{{rule_id:"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.uri + path

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}
	return nil
}

// Response assertion steps

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field %q: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}
	return nil
}

// getFieldValue resolves a dot-separated path ("transaction.category_id",
// "applied_rules.0.name") against a decoded JSON body.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = object
	for _, currentField := range fields {
		if field == nil {
			return nil
		}
		if idx, ok := parseIndex(currentField); ok {
			arr, isArr := field.([]any)
			if !isArr || idx >= len(arr) {
				return nil
			}
			field = arr[idx]
			continue
		}
		m, isMap := field.(map[string]any)
		if !isMap {
			return nil
		}
		field = m[currentField]
	}
	return field
}

func parseIndex(s string) (int, bool) {
	idx := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		idx = idx*10 + int(r-'0')
	}
	return idx, true
}

// Database assertion steps

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
