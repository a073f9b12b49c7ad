// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
)

type Users struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]models.User
}

func NewUsers() *Users {
	return &Users{byID: map[int]models.User{}}
}

var _ repositories.UserRepository = (*Users)(nil)

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return repositories.ErrDuplicateEmail
		}
		if existing.Phone == u.Phone {
			return repositories.ErrDuplicatePhone
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *Users) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Phone == phone })
}

func (r *Users) find(match func(models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *Users) MarkVerified(_ context.Context, id int, at time.Time) error {
	return r.update(id, func(u *models.User) {
		u.IsVerified = true
		u.VerifiedAt = &at
	})
}

func (r *Users) UpdatePassword(_ context.Context, id int, hash string) error {
	return r.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *Users) update(id int, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(&u)
	r.byID[id] = u
	return nil
}

type Verifications struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.VerificationCode
}

func NewVerifications() *Verifications {
	return &Verifications{}
}

var _ repositories.VerificationRepository = (*Verifications)(nil)

func (r *Verifications) Create(_ context.Context, v *models.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	r.rows = append(r.rows, *v)
	return nil
}

func (r *Verifications) GetLatest(_ context.Context, userID int, purpose string) (*models.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if v := r.rows[i]; v.UserID == userID && v.Purpose == purpose {
			return &v, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *Verifications) CountRecentSends(_ context.Context, userID int, purpose string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.rows {
		if v.UserID == userID && v.Purpose == purpose && !v.SentAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *Verifications) IncrementAttempts(_ context.Context, id int64) (int, error) {
	var attempts int
	err := r.update(id, func(v *models.VerificationCode) {
		v.Attempts++
		attempts = v.Attempts
	})
	return attempts, err
}

func (r *Verifications) MarkConfirmed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id && !r.rows[i].Confirmed {
			r.rows[i].Confirmed = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *Verifications) Expire(_ context.Context, id int64, at time.Time) error {
	return r.update(id, func(v *models.VerificationCode) { v.ExpiresAt = at })
}

func (r *Verifications) update(id int64, fn func(*models.VerificationCode)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			fn(&r.rows[i])
			return nil
		}
	}
	return repositories.ErrNotFound
}

type Expenses struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]models.Expense
}

func NewExpenses() *Expenses {
	return &Expenses{rows: map[int]models.Expense{}}
}

var _ repositories.ExpenseRepository = (*Expenses)(nil)

func (r *Expenses) Create(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	r.rows[e.ID] = *e
	return nil
}

func (r *Expenses) GetByID(_ context.Context, userID, id int) (*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok || e.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r *Expenses) Update(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[e.ID]
	if !ok || old.UserID != e.UserID {
		return repositories.ErrNotFound
	}
	e.CreatedAt = old.CreatedAt
	r.rows[e.ID] = *e
	return nil
}

func (r *Expenses) Delete(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok || e.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Expenses) ListByUser(ctx context.Context, userID int) ([]*models.Expense, error) {
	return r.ListBetween(ctx, userID, time.Time{}, time.Time{})
}

// ListBetween treats a zero bound as open.
func (r *Expenses) ListBetween(_ context.Context, userID int, from, to time.Time) ([]*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Expense
	for _, e := range r.rows {
		if e.UserID != userID || !inRange(e.Date, from, to) {
			continue
		}
		e := e
		res = append(res, &e)
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].Date, res[i].ID, res[j].Date, res[j].ID) })
	return res, nil
}

type Incomes struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]models.Income
}

func NewIncomes() *Incomes {
	return &Incomes{rows: map[int]models.Income{}}
}

var _ repositories.IncomeRepository = (*Incomes)(nil)

func (r *Incomes) Create(_ context.Context, inc *models.Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inc.ID = r.nextID
	inc.CreatedAt = time.Now()
	r.rows[inc.ID] = *inc
	return nil
}

func (r *Incomes) GetByID(_ context.Context, userID, id int) (*models.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc, ok := r.rows[id]
	if !ok || inc.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &inc, nil
}

func (r *Incomes) Update(_ context.Context, inc *models.Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[inc.ID]
	if !ok || old.UserID != inc.UserID {
		return repositories.ErrNotFound
	}
	inc.CreatedAt = old.CreatedAt
	r.rows[inc.ID] = *inc
	return nil
}

func (r *Incomes) Delete(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc, ok := r.rows[id]
	if !ok || inc.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Incomes) ListByUser(ctx context.Context, userID int) ([]*models.Income, error) {
	return r.ListBetween(ctx, userID, time.Time{}, time.Time{})
}

func (r *Incomes) ListBetween(_ context.Context, userID int, from, to time.Time) ([]*models.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Income
	for _, inc := range r.rows {
		if inc.UserID != userID || !inRange(inc.Date, from, to) {
			continue
		}
		inc := inc
		res = append(res, &inc)
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].Date, res[i].ID, res[j].Date, res[j].ID) })
	return res, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func newer(a time.Time, aID int, b time.Time, bID int) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID > bID
}
