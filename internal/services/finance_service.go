package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidSource   = errors.New("unknown income source")
)

const recentTransactions = 5

type FinanceService interface {
	AddExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, userID, id int) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, userID, id int) error

	AddIncome(ctx context.Context, inc *models.Income) error
	GetIncome(ctx context.Context, userID, id int) (*models.Income, error)
	UpdateIncome(ctx context.Context, inc *models.Income) error
	DeleteIncome(ctx context.Context, userID, id int) error

	Transactions(ctx context.Context, userID int) ([]models.Transaction, error)
	Dashboard(ctx context.Context, userID int) (*models.DashboardSummary, error)
}

type financeService struct {
	expenses repositories.ExpenseRepository
	incomes  repositories.IncomeRepository
	loc      *time.Location
	now      func() time.Time
}

func NewFinanceService(expenses repositories.ExpenseRepository, incomes repositories.IncomeRepository, loc *time.Location) FinanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &financeService{expenses: expenses, incomes: incomes, loc: loc, now: time.Now}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func checkAmount(d decimal.Decimal) (decimal.Decimal, error) {
	d = d.Round(2)
	if !d.IsPositive() {
		return d, ErrInvalidAmount
	}
	return d, nil
}

func (s *financeService) prepareExpense(e *models.Expense) error {
	if !contains(models.ExpenseCategories, e.Category) {
		return ErrInvalidCategory
	}
	amount, err := checkAmount(e.Amount)
	if err != nil {
		return err
	}
	e.Amount = amount
	return nil
}

func (s *financeService) prepareIncome(inc *models.Income) error {
	if !contains(models.IncomeSources, inc.Source) {
		return ErrInvalidSource
	}
	amount, err := checkAmount(inc.Amount)
	if err != nil {
		return err
	}
	inc.Amount = amount
	return nil
}

func (s *financeService) AddExpense(ctx context.Context, e *models.Expense) error {
	if err := s.prepareExpense(e); err != nil {
		return err
	}
	return s.expenses.Create(ctx, e)
}

func (s *financeService) GetExpense(ctx context.Context, userID, id int) (*models.Expense, error) {
	return s.expenses.GetByID(ctx, userID, id)
}

func (s *financeService) UpdateExpense(ctx context.Context, e *models.Expense) error {
	if err := s.prepareExpense(e); err != nil {
		return err
	}
	return s.expenses.Update(ctx, e)
}

func (s *financeService) DeleteExpense(ctx context.Context, userID, id int) error {
	return s.expenses.Delete(ctx, userID, id)
}

func (s *financeService) AddIncome(ctx context.Context, inc *models.Income) error {
	if err := s.prepareIncome(inc); err != nil {
		return err
	}
	return s.incomes.Create(ctx, inc)
}

func (s *financeService) GetIncome(ctx context.Context, userID, id int) (*models.Income, error) {
	return s.incomes.GetByID(ctx, userID, id)
}

func (s *financeService) UpdateIncome(ctx context.Context, inc *models.Income) error {
	if err := s.prepareIncome(inc); err != nil {
		return err
	}
	return s.incomes.Update(ctx, inc)
}

func (s *financeService) DeleteIncome(ctx context.Context, userID, id int) error {
	return s.incomes.Delete(ctx, userID, id)
}

func (s *financeService) Transactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	incomes, err := s.incomes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return merge(expenses, incomes), nil
}

// Dashboard summarizes the current calendar month in the configured zone.
func (s *financeService) Dashboard(ctx context.Context, userID int) (*models.DashboardSummary, error) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	expenses, err := s.expenses.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	incomes, err := s.incomes.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}

	sum := &models.DashboardSummary{
		Month:        from,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	byCategory := map[string]decimal.Decimal{}
	for _, e := range expenses {
		sum.TotalExpense = sum.TotalExpense.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for _, inc := range incomes {
		sum.TotalIncome = sum.TotalIncome.Add(inc.Amount)
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpense)

	for c, amount := range byCategory {
		sum.ByCategory = append(sum.ByCategory, models.CategoryTotal{Category: c, Amount: amount})
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		a, b := sum.ByCategory[i], sum.ByCategory[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	recent := merge(expenses, incomes)
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	sum.Recent = recent
	return sum, nil
}

// merge returns expenses and income newest first.
func merge(expenses []*models.Expense, incomes []*models.Income) []models.Transaction {
	out := make([]models.Transaction, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		out = append(out, models.Transaction{
			Kind: models.KindExpense, ID: e.ID, Date: e.Date, Label: e.Category,
			Amount: e.Amount, Description: e.Description,
		})
	}
	for _, inc := range incomes {
		out = append(out, models.Transaction{
			Kind: models.KindIncome, ID: inc.ID, Date: inc.Date, Label: inc.Source,
			Amount: inc.Amount, Description: inc.Description,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == models.KindIncome
		}
		return out[i].ID > out[j].ID
	})
	return out
}
