package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/services"
)

// FinanceHandler serves the dashboard and the expense/income pages. Every
// route sits behind AuthRequired and RequireOwner("id").
type FinanceHandler struct {
	finance     services.FinanceService
	userService services.UserService
	loc         *time.Location
}

func NewFinanceHandler(finance services.FinanceService, userService services.UserService, loc *time.Location) *FinanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &FinanceHandler{finance: finance, userService: userService, loc: loc}
}

// @Summary      Monthly dashboard
// @Tags         Finance
// @Produce      html
// @Param        id  path  int  true  "User ID"
// @Success      200
// @Failure      302  "not logged in"
// @Failure      403
// @Router       /dashboard/{id} [get]
func (h *FinanceHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := sessionUser(c)

	user, err := h.userService.GetUserByID(ctx, uid)
	if err != nil {
		renderError(c, "[finance][dashboard]", err)
		return
	}
	summary, err := h.finance.Dashboard(ctx, uid)
	if err != nil {
		renderError(c, "[finance][dashboard]", err)
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{"title": "Dashboard", "user": user, "summary": summary})
}

// @Summary      All transactions, newest first
// @Tags         Finance
// @Produce      html
// @Param        id  path  int  true  "User ID"
// @Success      200
// @Router       /all-transactions/{id} [get]
func (h *FinanceHandler) Transactions(c *gin.Context) {
	txs, err := h.finance.Transactions(c.Request.Context(), sessionUser(c))
	if err != nil {
		renderError(c, "[finance][transactions]", err)
		return
	}
	render(c, http.StatusOK, "transactions.html", gin.H{"title": "Transactions", "transactions": txs})
}

func (h *FinanceHandler) backToTransactions(c *gin.Context) {
	c.Redirect(http.StatusFound, "/all-transactions/"+strconv.Itoa(sessionUser(c)))
}

func (h *FinanceHandler) backToDashboard(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard/"+strconv.Itoa(sessionUser(c)))
}

// pathID reads a positive int path parameter; 404 otherwise.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func (h *FinanceHandler) today() string {
	return time.Now().In(h.loc).Format(dateLayout)
}
