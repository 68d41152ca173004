package transaction

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

type memTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	updates      int
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: map[uuid.UUID]*entity.Transaction{}}
}

func (m *memTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	m.transactions[tx.ID] = tx
	return nil
}

func (m *memTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if tx, ok := m.transactions[id]; ok {
		return tx, nil
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (m *memTransactionRepo) List(_ context.Context, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	var out []*entity.TransactionWithCategory
	for _, tx := range m.transactions {
		if tx.UserID == filter.UserID {
			out = append(out, &entity.TransactionWithCategory{Transaction: tx})
		}
	}
	return &entity.TransactionListResult{Transactions: out, Total: int64(len(out))}, nil
}

func (m *memTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	m.transactions[tx.ID] = tx
	m.updates++
	return nil
}

func (m *memTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.transactions, id)
	return nil
}

func (m *memTransactionRepo) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newMemAccountRepo(accounts ...*entity.Account) *memAccountRepo {
	repo := &memAccountRepo{accounts: map[uuid.UUID]*entity.Account{}}
	for _, a := range accounts {
		repo.accounts[a.ID] = a
	}
	return repo
}

func (m *memAccountRepo) Create(_ context.Context, a *entity.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domainerror.ErrAccountNotFound
}

func (m *memAccountRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (m *memAccountRepo) Update(_ context.Context, _ *entity.Account) error { return nil }
func (m *memAccountRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (m *memAccountRepo) AdjustBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	a, ok := m.accounts[id]
	if !ok {
		return domainerror.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

type memCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newMemCategoryRepo(categories ...*entity.Category) *memCategoryRepo {
	repo := &memCategoryRepo{categories: map[uuid.UUID]*entity.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (m *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (m *memCategoryRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (m *memCategoryRepo) Update(_ context.Context, _ *entity.Category) error { return nil }
func (m *memCategoryRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

type memRuleRepo struct {
	rules []*entity.Rule
}

func (m *memRuleRepo) Create(_ context.Context, r *entity.Rule) error {
	m.rules = append(m.rules, r)
	return nil
}

func (m *memRuleRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Rule, error) {
	return nil, domainerror.ErrRuleNotFound
}

func (m *memRuleRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	var out []*entity.Rule
	for _, r := range m.rules {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (m *memRuleRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	all, err := m.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*entity.Rule
	for _, r := range all {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuleRepo) Update(_ context.Context, _ *entity.Rule) error { return nil }
func (m *memRuleRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }

func (m *memRuleRepo) RecordApplication(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (m *memRuleRepo) UpdatePriorities(_ context.Context, _ []entity.RulePriorityUpdate) error {
	return nil
}

func (m *memRuleRepo) GetMaxPriorityByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

type testClock struct{}

func (testClock) Now() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

func TestCreateTransaction_AppliesRulesDuringCreate(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.RequireFromString("1000"))
	subscriptions := entity.NewCategory(userID, "Subscriptions", "", "", entity.CategoryTypeExpense)

	accountRepo := newMemAccountRepo(account)
	categoryRepo := newMemCategoryRepo(subscriptions)
	txRepo := newMemTransactionRepo()

	categoryID := subscriptions.ID
	r := entity.NewRule(userID, "netflix",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "netflix"}},
		[]entity.Action{{Type: entity.ActionSetCategory, CategoryID: &categoryID}},
		10, entity.RuleScopeExpense, true)
	ruleRepo := &memRuleRepo{rules: []*entity.Rule{r}}
	engine := rule.NewApplyRulesUseCase(ruleRepo, categoryRepo, accountRepo, nil, testClock{})

	uc := NewCreateTransactionUseCase(txRepo, accountRepo, categoryRepo, engine)
	output, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "NETFLIX.COM Subscription",
		Amount:      decimal.RequireFromString("15.99"),
		Type:        entity.TransactionTypeExpense,
		AccountID:   account.ID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	tx := output.Transaction
	if tx.CategoryID == nil || *tx.CategoryID != subscriptions.ID {
		t.Error("expected the rule to categorize the transaction during creation")
	}
	if tx.AppliedRuleID == nil || *tx.AppliedRuleID != r.ID {
		t.Error("expected the applied-rule reference to be recorded")
	}
	if len(output.AppliedRules) != 1 {
		t.Errorf("expected 1 applied rule, got %d", len(output.AppliedRules))
	}
	if txRepo.updates != 1 {
		t.Errorf("expected rule mutations to be persisted once, got %d updates", txRepo.updates)
	}
	if !account.Balance.Equal(decimal.RequireFromString("984.01")) {
		t.Errorf("expected balance 984.01 after the expense, got %s", account.Balance)
	}
}

func TestCreateTransaction_SkipRules(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.Zero)
	misc := entity.NewCategory(userID, "Misc", "", "", entity.CategoryTypeExpense)

	accountRepo := newMemAccountRepo(account)
	categoryRepo := newMemCategoryRepo(misc)
	txRepo := newMemTransactionRepo()

	miscID := misc.ID
	catchAll := entity.NewRule(userID, "catch all", nil,
		[]entity.Action{{Type: entity.ActionSetCategory, CategoryID: &miscID}},
		1, entity.RuleScopeAll, false)
	ruleRepo := &memRuleRepo{rules: []*entity.Rule{catchAll}}
	engine := rule.NewApplyRulesUseCase(ruleRepo, categoryRepo, accountRepo, nil, testClock{})

	uc := NewCreateTransactionUseCase(txRepo, accountRepo, categoryRepo, engine)
	output, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Imported row",
		Amount:      decimal.RequireFromString("10"),
		Type:        entity.TransactionTypeExpense,
		AccountID:   account.ID,
		SkipRules:   true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Transaction.CategoryID != nil {
		t.Error("expected SkipRules to bypass automation")
	}
	if len(output.AppliedRules) != 0 {
		t.Error("expected no applied rules")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.Zero)
	accountRepo := newMemAccountRepo(account)
	engine := rule.NewApplyRulesUseCase(&memRuleRepo{}, newMemCategoryRepo(), accountRepo, nil, testClock{})
	uc := NewCreateTransactionUseCase(newMemTransactionRepo(), accountRepo, newMemCategoryRepo(), engine)

	base := CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Valid",
		Amount:      decimal.RequireFromString("10"),
		Type:        entity.TransactionTypeExpense,
		AccountID:   account.ID,
	}

	t.Run("zero amount rejected", func(t *testing.T) {
		input := base
		input.Amount = decimal.Zero
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		input := base
		input.Amount = decimal.RequireFromString("-5")
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("transfer without destination rejected", func(t *testing.T) {
		input := base
		input.Type = entity.TransactionTypeTransfer
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrMissingDestinationAccount) {
			t.Errorf("expected ErrMissingDestinationAccount, got %v", err)
		}
	})

	t.Run("foreign account rejected", func(t *testing.T) {
		input := base
		input.AccountID = uuid.New()
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrAccountNotOwnedByUser) {
			t.Errorf("expected ErrAccountNotOwnedByUser, got %v", err)
		}
	})
}
