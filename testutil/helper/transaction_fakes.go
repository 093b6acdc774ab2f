package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// FakeTransaction records how a transaction was finished.
type FakeTransaction struct {
	mu          sync.Mutex
	committed   bool
	rolledBack  bool
	commitErr   error
	rollbackErr error
}

// Commit implements shell.Transaction.
func (tx *FakeTransaction) Commit(_ context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.commitErr != nil {
		return tx.commitErr
	}

	tx.committed = true

	return nil
}

// Rollback implements shell.Transaction.
func (tx *FakeTransaction) Rollback(_ context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	tx.rolledBack = true

	return tx.rollbackErr
}

func (tx *FakeTransaction) Committed() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.committed
}

func (tx *FakeTransaction) RolledBack() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.rolledBack
}

// FakeTransactionBeginner hands out FakeTransactions and remembers them.
type FakeTransactionBeginner struct {
	mu           sync.Mutex
	transactions []*FakeTransaction
	beginErr     error
	commitErr    error
	rollbackErr  error
}

// FakeTransactionBeginnerOption configures failures of a FakeTransactionBeginner.
type FakeTransactionBeginnerOption func(*FakeTransactionBeginner)

// FailingBegin makes Begin fail with err.
func FailingBegin(err error) FakeTransactionBeginnerOption {
	return func(b *FakeTransactionBeginner) { b.beginErr = err }
}

// FailingCommit makes Commit of every handed out transaction fail with err.
func FailingCommit(err error) FakeTransactionBeginnerOption {
	return func(b *FakeTransactionBeginner) { b.commitErr = err }
}

// FailingRollback makes Rollback of every handed out transaction fail with err.
func FailingRollback(err error) FakeTransactionBeginnerOption {
	return func(b *FakeTransactionBeginner) { b.rollbackErr = err }
}

// NewFakeTransactionBeginner creates a FakeTransactionBeginner.
func NewFakeTransactionBeginner(options ...FakeTransactionBeginnerOption) *FakeTransactionBeginner {
	beginner := &FakeTransactionBeginner{}
	for _, option := range options {
		option(beginner)
	}

	return beginner
}

// Begin implements shell.BeginsTransactions.
func (b *FakeTransactionBeginner) Begin(_ context.Context) (shell.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.beginErr != nil {
		return nil, b.beginErr
	}

	tx := &FakeTransaction{commitErr: b.commitErr, rollbackErr: b.rollbackErr}
	b.transactions = append(b.transactions, tx)

	return tx, nil
}

// Transactions returns the transactions handed out so far.
func (b *FakeTransactionBeginner) Transactions() []*FakeTransaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]*FakeTransaction(nil), b.transactions...)
}

// LastTransaction returns the most recently handed out transaction, or nil.
func (b *FakeTransactionBeginner) LastTransaction() *FakeTransaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.transactions) == 0 {
		return nil
	}

	return b.transactions[len(b.transactions)-1]
}
