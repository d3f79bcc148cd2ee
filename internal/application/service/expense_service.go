package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// ExpenseService handles optimistic mutations of monthly operating expenses
type ExpenseService struct {
	store *state.Store
	m     *mutator[entity.Expense]
}

// NewExpenseService creates a new expense service
func NewExpenseService(store *state.Store, remote repository.RemoteService, rec reconciler, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		store: store,
		m: &mutator[entity.Expense]{
			resource: "Expense",
			store:    store,
			remote:   remote.Expenses(),
			rec:      rec,
			logger:   logger,
			items:    func(ds *entity.Dataset) *[]entity.Expense { return &ds.Expenses },
			id:       func(e entity.Expense) entity.EntityID { return e.ID },
			setID:    func(e *entity.Expense, id entity.EntityID) { e.ID = id },
		},
	}
}

// ListExpenses returns the current in-memory expense list
func (s *ExpenseService) ListExpenses() []entity.Expense {
	return s.store.Snapshot().Expenses
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Category string
	Amount   float64
}

// CreateExpense optimistically inserts a monthly expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (entity.Expense, error) {
	if strings.TrimSpace(input.Category) == "" {
		return entity.Expense{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "category", Message: "Category is required"},
		})
	}
	return s.m.create(ctx, entity.Expense{
		Category: strings.TrimSpace(input.Category),
		Amount:   input.Amount,
	})
}

// UpdateExpenseInput represents the partial update input
type UpdateExpenseInput struct {
	Category *string
	Amount   *float64
}

// UpdateExpense merges the partial edit into memory synchronously
func (s *ExpenseService) UpdateExpense(ctx context.Context, id entity.EntityID, input *UpdateExpenseInput) (entity.Expense, error) {
	fields := map[string]interface{}{}
	apply := func(e *entity.Expense) {
		if input.Category != nil {
			e.Category = *input.Category
			fields["category"] = *input.Category
		}
		if input.Amount != nil {
			e.Amount = *input.Amount
			fields["amount"] = *input.Amount
		}
	}
	return s.m.update(ctx, id, apply, fields)
}

// DeleteExpense removes the expense optimistically
func (s *ExpenseService) DeleteExpense(ctx context.Context, id entity.EntityID) error {
	return s.m.delete(ctx, id)
}
