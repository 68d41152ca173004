package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

type fakeScheduleRepository struct {
	schedules map[uuid.UUID]*entity.RecurringSchedule
	updateErr error
}

func newFakeScheduleRepository(schedules ...*entity.RecurringSchedule) *fakeScheduleRepository {
	repo := &fakeScheduleRepository{schedules: map[uuid.UUID]*entity.RecurringSchedule{}}
	for _, s := range schedules {
		repo.schedules[s.ID] = s
	}
	return repo
}

func (f *fakeScheduleRepository) Create(_ context.Context, s *entity.RecurringSchedule) error {
	f.schedules[s.ID] = s
	return nil
}

func (f *fakeScheduleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return nil, domainerror.ErrScheduleNotFound
}

func (f *fakeScheduleRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	var out []*entity.RecurringSchedule
	for _, s := range f.schedules {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepository) FindDue(_ context.Context, asOf time.Time) ([]*entity.RecurringSchedule, error) {
	var out []*entity.RecurringSchedule
	for _, s := range f.schedules {
		if s.AutoProcess && s.IsDue(asOf) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepository) Update(_ context.Context, s *entity.RecurringSchedule) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.schedules[s.ID] = s
	return nil
}

func (f *fakeScheduleRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.schedules, id)
	return nil
}

type recordingTransactionRepository struct {
	created []*entity.Transaction
}

func (f *recordingTransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	f.created = append(f.created, tx)
	return nil
}

func (f *recordingTransactionRepository) FindByID(_ context.Context, _ uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (f *recordingTransactionRepository) List(_ context.Context, _ adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (f *recordingTransactionRepository) Update(_ context.Context, _ *entity.Transaction) error {
	return nil
}
func (f *recordingTransactionRepository) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *recordingTransactionRepository) FindRecent(_ context.Context, _ uuid.UUID, _ int) ([]*entity.Transaction, error) {
	return nil, nil
}

type balanceAccountRepository struct {
	balances map[uuid.UUID]decimal.Decimal
}

func (f *balanceAccountRepository) Create(_ context.Context, a *entity.Account) error {
	if f.balances == nil {
		f.balances = map[uuid.UUID]decimal.Decimal{}
	}
	f.balances[a.ID] = a.Balance
	return nil
}

func (f *balanceAccountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if balance, ok := f.balances[id]; ok {
		return &entity.Account{ID: id, Balance: balance}, nil
	}
	return nil, domainerror.ErrAccountNotFound
}

func (f *balanceAccountRepository) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (f *balanceAccountRepository) Update(_ context.Context, _ *entity.Account) error { return nil }
func (f *balanceAccountRepository) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (f *balanceAccountRepository) AdjustBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if f.balances == nil {
		f.balances = map[uuid.UUID]decimal.Decimal{}
	}
	f.balances[id] = f.balances[id].Add(delta)
	return nil
}

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func newProcessor(scheduleRepo *fakeScheduleRepository, txRepo *recordingTransactionRepository, accountRepo *balanceAccountRepository, now time.Time) *ProcessScheduleUseCase {
	return NewProcessScheduleUseCase(scheduleRepo, txRepo, accountRepo, stubClock{now: now})
}

func monthlyRent(userID, accountID uuid.UUID) *entity.RecurringSchedule {
	s := entity.NewRecurringSchedule(
		userID, "Rent", decimal.RequireFromString("1200"),
		entity.TransactionTypeExpense, accountID,
		entity.FrequencyMonthly, 1, day(2024, 6, 1),
	)
	anchor := 1
	s.DayOfMonth = &anchor
	return s
}

func TestProcessSchedule_MaterializesAndAdvances(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()
	schedule := monthlyRent(userID, accountID)
	categoryID := uuid.New()
	schedule.CategoryID = &categoryID

	scheduleRepo := newFakeScheduleRepository(schedule)
	txRepo := &recordingTransactionRepository{}
	accountRepo := &balanceAccountRepository{balances: map[uuid.UUID]decimal.Decimal{accountID: decimal.RequireFromString("5000")}}

	processor := newProcessor(scheduleRepo, txRepo, accountRepo, day(2024, 6, 1))
	output, err := processor.Execute(context.Background(), ProcessScheduleInput{ScheduleID: schedule.ID, UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	t.Run("transaction carries the schedule's fields and back-reference", func(t *testing.T) {
		if len(txRepo.created) != 1 {
			t.Fatalf("expected 1 created transaction, got %d", len(txRepo.created))
		}
		tx := txRepo.created[0]
		if tx.Description != "Rent" || !tx.Amount.Equal(decimal.RequireFromString("1200")) {
			t.Errorf("unexpected transaction payload: %s %s", tx.Description, tx.Amount)
		}
		if !tx.Date.Equal(day(2024, 6, 1)) {
			t.Errorf("expected transaction dated on the occurrence, got %v", tx.Date)
		}
		if tx.RecurringScheduleID == nil || *tx.RecurringScheduleID != schedule.ID {
			t.Error("expected back-reference to the schedule")
		}
		if tx.CategoryID == nil || *tx.CategoryID != categoryID {
			t.Error("expected the schedule's category to be authoritative")
		}
		if tx.AppliedRuleID != nil {
			t.Error("expected generated transaction to bypass the rule engine")
		}
	})

	t.Run("balance step applied", func(t *testing.T) {
		if got := accountRepo.balances[accountID]; !got.Equal(decimal.RequireFromString("3800")) {
			t.Errorf("expected balance 3800 after the expense, got %s", got)
		}
	})

	t.Run("schedule advanced one month", func(t *testing.T) {
		if !output.Schedule.NextDate.Equal(day(2024, 7, 1)) {
			t.Errorf("expected next date 2024-07-01, got %v", output.Schedule.NextDate)
		}
		if output.Schedule.LastProcessedAt == nil {
			t.Error("expected last processed timestamp to be set")
		}
	})
}

func TestProcessSchedule_NotDueWithoutForce(t *testing.T) {
	userID := uuid.New()
	schedule := monthlyRent(userID, uuid.New())

	scheduleRepo := newFakeScheduleRepository(schedule)
	processor := newProcessor(scheduleRepo, &recordingTransactionRepository{}, &balanceAccountRepository{}, day(2024, 5, 20))

	_, err := processor.Execute(context.Background(), ProcessScheduleInput{ScheduleID: schedule.ID, UserID: userID})
	if !errors.Is(err, domainerror.ErrScheduleNotDue) {
		t.Errorf("expected ErrScheduleNotDue, got %v", err)
	}

	t.Run("force overrides the due check", func(t *testing.T) {
		_, err := processor.Execute(context.Background(), ProcessScheduleInput{ScheduleID: schedule.ID, UserID: userID, Force: true})
		if err != nil {
			t.Fatalf("Execute(force) error = %v", err)
		}
	})
}

func TestProcessSchedule_TransferMovesBothBalances(t *testing.T) {
	userID := uuid.New()
	sourceID := uuid.New()
	destinationID := uuid.New()

	schedule := entity.NewRecurringSchedule(
		userID, "Savings sweep", decimal.RequireFromString("300"),
		entity.TransactionTypeTransfer, sourceID,
		entity.FrequencyMonthly, 1, day(2024, 6, 1),
	)
	schedule.DestinationAccountID = &destinationID

	accountRepo := &balanceAccountRepository{balances: map[uuid.UUID]decimal.Decimal{
		sourceID:      decimal.RequireFromString("1000"),
		destinationID: decimal.RequireFromString("50"),
	}}
	processor := newProcessor(newFakeScheduleRepository(schedule), &recordingTransactionRepository{}, accountRepo, day(2024, 6, 1))

	if _, err := processor.Execute(context.Background(), ProcessScheduleInput{ScheduleID: schedule.ID, UserID: userID}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := accountRepo.balances[sourceID]; !got.Equal(decimal.RequireFromString("700")) {
		t.Errorf("expected source balance 700, got %s", got)
	}
	if got := accountRepo.balances[destinationID]; !got.Equal(decimal.RequireFromString("350")) {
		t.Errorf("expected destination balance 350, got %s", got)
	}
}

func TestProcessSchedule_OtherUsersScheduleIsHidden(t *testing.T) {
	schedule := monthlyRent(uuid.New(), uuid.New())
	processor := newProcessor(newFakeScheduleRepository(schedule), &recordingTransactionRepository{}, &balanceAccountRepository{}, day(2024, 6, 1))

	_, err := processor.Execute(context.Background(), ProcessScheduleInput{ScheduleID: schedule.ID, UserID: uuid.New()})
	if !errors.Is(err, domainerror.ErrScheduleNotFound) {
		t.Errorf("expected foreign schedule to be reported as not found, got %v", err)
	}
}

func TestRunDueSchedules_DrainsBacklogAndIsolatesFailures(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	// Overdue by two occurrences: due on the 1st, swept on the 15th of the
	// following month.
	overdue := entity.NewRecurringSchedule(
		userID, "Gym", decimal.RequireFromString("40"),
		entity.TransactionTypeExpense, accountID,
		entity.FrequencyMonthly, 1, day(2024, 5, 1),
	)
	future := entity.NewRecurringSchedule(
		userID, "Insurance", decimal.RequireFromString("90"),
		entity.TransactionTypeExpense, accountID,
		entity.FrequencyMonthly, 1, day(2024, 7, 1),
	)
	manual := entity.NewRecurringSchedule(
		userID, "Manual bill", decimal.RequireFromString("25"),
		entity.TransactionTypeExpense, accountID,
		entity.FrequencyMonthly, 1, day(2024, 5, 1),
	)
	manual.AutoProcess = false

	scheduleRepo := newFakeScheduleRepository(overdue, future, manual)
	txRepo := &recordingTransactionRepository{}
	now := day(2024, 6, 15)
	processor := newProcessor(scheduleRepo, txRepo, &balanceAccountRepository{}, now)
	sweep := NewRunDueSchedulesUseCase(scheduleRepo, processor, stubClock{now: now})

	output, err := sweep.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	t.Run("backlogged occurrences all materialize", func(t *testing.T) {
		if output.Processed != 2 {
			t.Errorf("expected 2 processed occurrences (May and June), got %d", output.Processed)
		}
		if len(txRepo.created) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(txRepo.created))
		}
	})

	t.Run("future and manual schedules untouched", func(t *testing.T) {
		for _, tx := range txRepo.created {
			if tx.Description != "Gym" {
				t.Errorf("unexpected transaction for %q", tx.Description)
			}
		}
	})

	t.Run("schedule left pointing past the sweep day", func(t *testing.T) {
		advanced, _ := scheduleRepo.FindByID(context.Background(), overdue.ID)
		if !advanced.NextDate.Equal(day(2024, 7, 1)) {
			t.Errorf("expected next date 2024-07-01, got %v", advanced.NextDate)
		}
	})
}

func TestSkipOccurrence(t *testing.T) {
	userID := uuid.New()
	schedule := monthlyRent(userID, uuid.New())
	scheduleRepo := newFakeScheduleRepository(schedule)

	skipper := NewSkipOccurrenceUseCase(scheduleRepo)
	output, err := skipper.Execute(context.Background(), SkipOccurrenceInput{ScheduleID: schedule.ID, UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !output.Schedule.NextDate.Equal(day(2024, 7, 1)) {
		t.Errorf("expected skip to advance without materializing, got %v", output.Schedule.NextDate)
	}
	if output.Schedule.LastProcessedAt != nil {
		t.Error("expected skip not to record a processing timestamp")
	}
}

func TestSetScheduleActive_PauseKeepsNextDate(t *testing.T) {
	userID := uuid.New()
	schedule := monthlyRent(userID, uuid.New())
	scheduleRepo := newFakeScheduleRepository(schedule)
	toggle := NewSetScheduleActiveUseCase(scheduleRepo)

	paused, err := toggle.Execute(context.Background(), SetScheduleActiveInput{ScheduleID: schedule.ID, UserID: userID, Active: false})
	if err != nil {
		t.Fatalf("Execute(pause) error = %v", err)
	}
	if paused.Schedule.IsActive {
		t.Error("expected schedule to be paused")
	}
	if !paused.Schedule.NextDate.Equal(day(2024, 6, 1)) {
		t.Error("expected pause to keep the next occurrence in place")
	}

	resumed, err := toggle.Execute(context.Background(), SetScheduleActiveInput{ScheduleID: schedule.ID, UserID: userID, Active: true})
	if err != nil {
		t.Fatalf("Execute(resume) error = %v", err)
	}
	if !resumed.Schedule.IsActive {
		t.Error("expected schedule to be active again")
	}
	if !resumed.Schedule.IsDue(day(2024, 8, 1)) {
		t.Error("expected resumed schedule to be due for its backlog")
	}
}
