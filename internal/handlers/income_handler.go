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

type incomeInput struct {
	Date        string `form:"date" binding:"required,datetime=2006-01-02"`
	Source      string `form:"source" binding:"required,oneof=Salary Business Investment Gift Other"`
	Amount      string `form:"amount" binding:"required,amount"`
	Description string `form:"description" binding:"max=255"`
}

func (in incomeInput) toModel(h *FinanceHandler, userID int) (*models.Income, error) {
	date, err := parseDate(in.Date, h.loc)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, err
	}
	return &models.Income{
		UserID:      userID,
		Date:        date,
		Source:      in.Source,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

func incomeInputFrom(inc *models.Income) incomeInput {
	return incomeInput{
		Date:        inc.Date.Format(dateLayout),
		Source:      inc.Source,
		Amount:      inc.Amount.StringFixed(2),
		Description: inc.Description,
	}
}

func (h *FinanceHandler) incomeForm(c *gin.Context, code int, title, action string, in incomeInput, errs map[string]string) {
	render(c, code, "income_form.html", gin.H{
		"title":   title,
		"action":  action,
		"form":    in,
		"errors":  errs,
		"sources": models.IncomeSources,
	})
}

// @Summary      New income form
// @Tags         Finance
// @Produce      html
// @Param        id  path  int  true  "User ID"
// @Success      200
// @Router       /add_income/{id} [get]
func (h *FinanceHandler) AddIncomePage(c *gin.Context) {
	h.incomeForm(c, http.StatusOK, "Add income", c.Request.URL.Path,
		incomeInput{Date: h.today(), Source: models.IncomeSources[0]}, nil)
}

// @Summary      Record income
// @Tags         Finance
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id           path      int     true   "User ID"
// @Param        date         formData  string  true   "YYYY-MM-DD"
// @Param        source       formData  string  true   "Income source"
// @Param        amount       formData  string  true   "Positive amount"
// @Param        description  formData  string  false  "Up to 255 characters"
// @Success      302
// @Failure      400  "form re-rendered with errors"
// @Router       /add_income/{id} [post]
func (h *FinanceHandler) AddIncome(c *gin.Context) {
	var in incomeInput
	if err := c.ShouldBind(&in); err != nil {
		h.incomeForm(c, http.StatusBadRequest, "Add income", c.Request.URL.Path, in, bindErrors(err))
		return
	}
	inc, err := in.toModel(h, sessionUser(c))
	if err == nil {
		err = h.finance.AddIncome(c.Request.Context(), inc)
	}
	if h.incomeFailed(c, "Add income", in, err) {
		return
	}
	log.Printf("[finance][income] created id=%d user_id=%d", inc.ID, inc.UserID)
	h.backToDashboard(c)
}

// @Summary      Edit income form
// @Tags         Finance
// @Produce      html
// @Param        id          path  int  true  "User ID"
// @Param        income_id   path  int  true  "Income ID"
// @Success      200
// @Failure      404
// @Router       /edit_income/{id}/{income_id} [get]
func (h *FinanceHandler) EditIncomePage(c *gin.Context) {
	id, ok := pathID(c, "income_id")
	if !ok {
		return
	}
	e, err := h.finance.GetIncome(c.Request.Context(), sessionUser(c), id)
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		renderError(c, "[finance][income]", err)
		return
	}
	h.incomeForm(c, http.StatusOK, "Edit income", c.Request.URL.Path, incomeInputFrom(e), nil)
}

// @Summary      Update income
// @Tags         Finance
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id          path  int  true  "User ID"
// @Param        income_id   path  int  true  "Income ID"
// @Success      302
// @Failure      400
// @Failure      404
// @Router       /edit_income/{id}/{income_id} [post]
func (h *FinanceHandler) EditIncome(c *gin.Context) {
	id, ok := pathID(c, "income_id")
	if !ok {
		return
	}
	var in incomeInput
	if err := c.ShouldBind(&in); err != nil {
		h.incomeForm(c, http.StatusBadRequest, "Edit income", c.Request.URL.Path, in, bindErrors(err))
		return
	}
	inc, err := in.toModel(h, sessionUser(c))
	if err == nil {
		inc.ID = id
		err = h.finance.UpdateIncome(c.Request.Context(), inc)
	}
	if h.incomeFailed(c, "Edit income", in, err) {
		return
	}
	h.backToTransactions(c)
}

// @Summary      Delete income
// @Tags         Finance
// @Param        id          path  int  true  "User ID"
// @Param        income_id   path  int  true  "Income ID"
// @Success      302
// @Failure      404
// @Router       /delete_income/{id}/{income_id} [post]
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	id, ok := pathID(c, "income_id")
	if !ok {
		return
	}
	err := h.finance.DeleteIncome(c.Request.Context(), sessionUser(c), id)
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		renderError(c, "[finance][income]", err)
		return
	}
	h.backToTransactions(c)
}

// incomeFailed renders the outcome of a failed save and reports whether it did.
func (h *FinanceHandler) incomeFailed(c *gin.Context, title string, in incomeInput, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, repositories.ErrNotFound):
		NotFound(c)
	case errors.Is(err, services.ErrInvalidAmount):
		h.incomeForm(c, http.StatusBadRequest, title, c.Request.URL.Path, in, map[string]string{"amount": "Amount must be a positive number"})
	case errors.Is(err, services.ErrInvalidSource):
		h.incomeForm(c, http.StatusBadRequest, title, c.Request.URL.Path, in, map[string]string{"source": "Unknown income source"})
	default:
		renderError(c, "[finance][income]", fmt.Errorf("save income: %w", err))
	}
	return true
}
