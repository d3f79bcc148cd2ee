package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func newExpenseService(env *testEnv) *ExpenseService {
	return NewExpenseService(env.store, env.remote, env.sync, zap.NewNop())
}

func TestExpenseService_CreateTrimsCategory(t *testing.T) {
	env := newTestEnv()
	svc := newExpenseService(env)

	exp, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{
		Category: "  Rent  ",
		Amount:   9000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rent", exp.Category)
	assert.False(t, exp.ID.Pending)

	assert.Len(t, svc.ListExpenses(), 1)
}

func TestExpenseService_CreateRequiresCategory(t *testing.T) {
	env := newTestEnv()
	svc := newExpenseService(env)

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{Category: "   "})
	require.Error(t, err)
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	svc := newExpenseService(env)

	exp, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{Category: "Rent", Amount: 9000})
	require.NoError(t, err)

	amount := 9500.0
	updated, err := svc.UpdateExpense(context.Background(), exp.ID, &UpdateExpenseInput{Amount: &amount})
	require.NoError(t, err)
	assert.InDelta(t, 9500, updated.Amount, 1e-9)

	require.NoError(t, svc.DeleteExpense(context.Background(), exp.ID))
	assert.Empty(t, svc.ListExpenses())
}

func TestExpenseService_CreateFailureRevertsToRemoteTruth(t *testing.T) {
	env := newTestEnv()
	svc := newExpenseService(env)
	env.remote.expenses.failCreate = true

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{Category: "Rent", Amount: 9000})
	require.Error(t, err)
	assert.Empty(t, svc.ListExpenses())
}
