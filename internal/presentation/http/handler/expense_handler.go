package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles operating expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing monthly expenses
// @Summary List Expenses
// @Tags expenses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	response.OK(c, "Expenses retrieved successfully", gin.H{
		"expenses": h.expenseService.ListExpenses(),
	})
}

// Create handles expense creation
// @Summary Create Expense
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateExpenseRequest true "Expense data"
// @Success 201 {object} response.APIResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	expense, err := h.expenseService.CreateExpense(ctx, &service.CreateExpenseInput{
		Category: req.Category,
		Amount:   req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense created successfully", gin.H{"expense": expense})
}

// Update handles a partial expense update
// @Summary Update Expense
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body request.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req request.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	expense, err := h.expenseService.UpdateExpense(ctx, id, &service.UpdateExpenseInput{
		Category: req.Category,
		Amount:   req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense updated successfully", gin.H{"expense": expense})
}

// Delete handles expense deletion
// @Summary Delete Expense
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} response.APIResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.expenseService.DeleteExpense(ctx, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense deleted successfully", nil)
}
