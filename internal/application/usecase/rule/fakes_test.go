package rule

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// fakeRuleRepository is an in-memory RuleRepository preserving the engine's
// evaluation order (priority descending, creation order on ties).
type fakeRuleRepository struct {
	rules        []*entity.Rule
	findErr      error
	recordErr    error
	applications []uuid.UUID
}

func (f *fakeRuleRepository) Create(_ context.Context, r *entity.Rule) error {
	f.rules = append(f.rules, r)
	return nil
}

func (f *fakeRuleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Rule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerror.ErrRuleNotFound
}

func (f *fakeRuleRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*entity.Rule
	for _, r := range f.rules {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out, nil
}

func (f *fakeRuleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	all, err := f.FindByUser(ctx, userID)
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

func (f *fakeRuleRepository) Update(_ context.Context, _ *entity.Rule) error { return nil }

func (f *fakeRuleRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.rules {
		if r.ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrRuleNotFound
}

func (f *fakeRuleRepository) RecordApplication(_ context.Context, ruleID uuid.UUID, _ time.Time) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.applications = append(f.applications, ruleID)
	return nil
}

func (f *fakeRuleRepository) UpdatePriorities(_ context.Context, updates []entity.RulePriorityUpdate) error {
	for _, update := range updates {
		for _, r := range f.rules {
			if r.ID == update.ID {
				r.Priority = update.Priority
			}
		}
	}
	return nil
}

func (f *fakeRuleRepository) GetMaxPriorityByUser(_ context.Context, userID uuid.UUID) (int, error) {
	maxPriority := 0
	for _, r := range f.rules {
		if r.UserID == userID && r.Priority > maxPriority {
			maxPriority = r.Priority
		}
	}
	return maxPriority, nil
}

// countApplications returns how many times the rule's stats were recorded.
func (f *fakeRuleRepository) countApplications(ruleID uuid.UUID) int {
	n := 0
	for _, id := range f.applications {
		if id == ruleID {
			n++
		}
	}
	return n
}

type fakeCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
}

func (f *fakeCategoryRepository) Create(_ context.Context, c *entity.Category) error {
	if f.categories == nil {
		f.categories = map[uuid.UUID]*entity.Category{}
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepository) Update(_ context.Context, _ *entity.Category) error { return nil }
func (f *fakeCategoryRepository) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

type fakeAccountRepository struct {
	accounts map[uuid.UUID]*entity.Account
}

func (f *fakeAccountRepository) Create(_ context.Context, a *entity.Account) error {
	if f.accounts == nil {
		f.accounts = map[uuid.UUID]*entity.Account{}
	}
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, domainerror.ErrAccountNotFound
}

func (f *fakeAccountRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, _ *entity.Account) error { return nil }
func (f *fakeAccountRepository) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (f *fakeAccountRepository) AdjustBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	a, ok := f.accounts[id]
	if !ok {
		return domainerror.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

type fakeTransactionRepository struct {
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range f.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) List(_ context.Context, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	var out []*entity.TransactionWithCategory
	for _, tx := range f.transactions {
		if tx.UserID == filter.UserID {
			out = append(out, &entity.TransactionWithCategory{Transaction: tx})
		}
	}
	return &entity.TransactionListResult{Transactions: out, Total: int64(len(out))}, nil
}

func (f *fakeTransactionRepository) Update(_ context.Context, _ *entity.Transaction) error { return nil }
func (f *fakeTransactionRepository) Delete(_ context.Context, _ uuid.UUID) error           { return nil }

func (f *fakeTransactionRepository) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeGuard is an in-memory RuleApplicationGuard.
type fakeGuard struct {
	seen map[string]bool
	err  error
}

func (f *fakeGuard) FirstApplication(_ context.Context, ruleID, transactionID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	key := ruleID.String() + ":" + transactionID.String()
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

// fixedClock returns a constant time.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var errRepositoryDown = errors.New("repository unavailable")
