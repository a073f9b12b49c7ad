package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
	"wealthwise/internal/services"
)

type expenseInput struct {
	Date        string `form:"date" binding:"required,datetime=2006-01-02"`
	Category    string `form:"category" binding:"required,oneof=Food Transportation Entertainment Bills Shopping Health Other"`
	Amount      string `form:"amount" binding:"required,amount"`
	Description string `form:"description" binding:"max=255"`
}

func (in expenseInput) toModel(h *FinanceHandler, userID int) (*models.Expense, error) {
	date, err := parseDate(in.Date, h.loc)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		UserID:      userID,
		Date:        date,
		Category:    in.Category,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

func expenseInputFrom(e *models.Expense) expenseInput {
	return expenseInput{
		Date:        e.Date.Format(dateLayout),
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
		Description: e.Description,
	}
}

func (h *FinanceHandler) expenseForm(c *gin.Context, code int, title, action string, in expenseInput, errs map[string]string) {
	render(c, code, "expense_form.html", gin.H{
		"title":      title,
		"action":     action,
		"form":       in,
		"errors":     errs,
		"categories": models.ExpenseCategories,
	})
}

// @Summary      New expense form
// @Tags         Finance
// @Produce      html
// @Param        id  path  int  true  "User ID"
// @Success      200
// @Router       /add_expense/{id} [get]
func (h *FinanceHandler) AddExpensePage(c *gin.Context) {
	h.expenseForm(c, http.StatusOK, "Add expense", c.Request.URL.Path,
		expenseInput{Date: h.today(), Category: models.ExpenseCategories[0]}, nil)
}

// @Summary      Record an expense
// @Tags         Finance
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id           path      int     true   "User ID"
// @Param        date         formData  string  true   "YYYY-MM-DD"
// @Param        category     formData  string  true   "Expense category"
// @Param        amount       formData  string  true   "Positive amount"
// @Param        description  formData  string  false  "Up to 255 characters"
// @Success      302
// @Failure      400  "form re-rendered with errors"
// @Router       /add_expense/{id} [post]
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	var in expenseInput
	if err := c.ShouldBind(&in); err != nil {
		h.expenseForm(c, http.StatusBadRequest, "Add expense", c.Request.URL.Path, in, bindErrors(err))
		return
	}
	e, err := in.toModel(h, sessionUser(c))
	if err == nil {
		err = h.finance.AddExpense(c.Request.Context(), e)
	}
	if h.expenseFailed(c, "Add expense", in, err) {
		return
	}
	log.Printf("[finance][expense] created id=%d user_id=%d", e.ID, e.UserID)
	h.backToDashboard(c)
}

// @Summary      Edit expense form
// @Tags         Finance
// @Produce      html
// @Param        id          path  int  true  "User ID"
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      200
// @Failure      404
// @Router       /edit_expense/{id}/{expense_id} [get]
func (h *FinanceHandler) EditExpensePage(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}
	e, err := h.finance.GetExpense(c.Request.Context(), sessionUser(c), id)
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		renderError(c, "[finance][expense]", err)
		return
	}
	h.expenseForm(c, http.StatusOK, "Edit expense", c.Request.URL.Path, expenseInputFrom(e), nil)
}

// @Summary      Update an expense
// @Tags         Finance
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id          path  int  true  "User ID"
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      302
// @Failure      400
// @Failure      404
// @Router       /edit_expense/{id}/{expense_id} [post]
func (h *FinanceHandler) EditExpense(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}
	var in expenseInput
	if err := c.ShouldBind(&in); err != nil {
		h.expenseForm(c, http.StatusBadRequest, "Edit expense", c.Request.URL.Path, in, bindErrors(err))
		return
	}
	e, err := in.toModel(h, sessionUser(c))
	if err == nil {
		e.ID = id
		err = h.finance.UpdateExpense(c.Request.Context(), e)
	}
	if h.expenseFailed(c, "Edit expense", in, err) {
		return
	}
	h.backToTransactions(c)
}

// @Summary      Delete an expense
// @Tags         Finance
// @Param        id          path  int  true  "User ID"
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      302
// @Failure      404
// @Router       /delete_expense/{id}/{expense_id} [post]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}
	err := h.finance.DeleteExpense(c.Request.Context(), sessionUser(c), id)
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		renderError(c, "[finance][expense]", err)
		return
	}
	h.backToTransactions(c)
}

// expenseFailed renders the outcome of a failed save and reports whether it did.
func (h *FinanceHandler) expenseFailed(c *gin.Context, title string, in expenseInput, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, repositories.ErrNotFound):
		NotFound(c)
	case errors.Is(err, services.ErrInvalidAmount):
		h.expenseForm(c, http.StatusBadRequest, title, c.Request.URL.Path, in, map[string]string{"amount": "Amount must be a positive number"})
	case errors.Is(err, services.ErrInvalidCategory):
		h.expenseForm(c, http.StatusBadRequest, title, c.Request.URL.Path, in, map[string]string{"category": "Unknown category"})
	default:
		renderError(c, "[finance][expense]", fmt.Errorf("save expense: %w", err))
	}
	return true
}
