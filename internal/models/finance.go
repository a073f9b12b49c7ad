package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var ExpenseCategories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Bills",
	"Shopping",
	"Health",
	"Other",
}

var IncomeSources = []string{
	"Salary",
	"Business",
	"Investment",
	"Gift",
	"Other",
}

type Expense struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Income struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Date        time.Time       `json:"date"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// Transaction is an expense or income row in the merged history.
type Transaction struct {
	Kind        string          `json:"kind"`
	ID          int             `json:"id"`
	Date        time.Time       `json:"date"`
	Label       string          `json:"label"` // category or source
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type DashboardSummary struct {
	Month        time.Time       `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	ByCategory   []CategoryTotal `json:"by_category"`
	Recent       []Transaction   `json:"recent"`
}
