// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// applyBalanceStep moves account balances for a newly recorded transaction:
// expenses subtract from the account, income adds, transfers move the amount
// from the source to the destination. A failed update is logged and left for
// reconciliation; the transaction record is already the source of truth.
func applyBalanceStep(ctx context.Context, accountRepo adapter.AccountRepository, tx *entity.Transaction) {
	var err error
	switch tx.Type {
	case entity.TransactionTypeExpense:
		err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount.Neg())
	case entity.TransactionTypeIncome:
		err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount)
	case entity.TransactionTypeTransfer:
		if err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount.Neg()); err == nil && tx.DestinationAccountID != nil {
			err = accountRepo.AdjustBalance(ctx, *tx.DestinationAccountID, tx.Amount)
		}
	}
	if err != nil {
		slog.Error("failed to update account balance",
			"transactionID", tx.ID, "accountID", tx.AccountID, "error", err)
	}
}

// reverseBalanceStep undoes applyBalanceStep for a deleted or superseded
// transaction.
func reverseBalanceStep(ctx context.Context, accountRepo adapter.AccountRepository, tx *entity.Transaction) {
	var err error
	switch tx.Type {
	case entity.TransactionTypeExpense:
		err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount)
	case entity.TransactionTypeIncome:
		err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount.Neg())
	case entity.TransactionTypeTransfer:
		if err = accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount); err == nil && tx.DestinationAccountID != nil {
			err = accountRepo.AdjustBalance(ctx, *tx.DestinationAccountID, tx.Amount.Neg())
		}
	}
	if err != nil {
		slog.Error("failed to reverse account balance",
			"transactionID", tx.ID, "accountID", tx.AccountID, "error", err)
	}
}
