package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise/internal/config"
	"wealthwise/internal/models"
	"wealthwise/internal/repositories/repotest"
)

func init() { gin.SetMode(gin.TestMode) }

type codeBox struct {
	mu    sync.Mutex
	codes map[string]string // email -> last code
	sent  int
}

func (b *codeBox) SendCode(_ context.Context, user *models.User, _ string, code string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.codes[user.Email] = code
	b.sent++
	return nil
}

func (b *codeBox) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent
}

func (b *codeBox) get(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.codes[email]
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Security.SecretKey = "test-secret-key"
	cfg.Security.CSRFEnabled = false
	cfg.Security.BcryptCost = 4
	cfg.Email.SuppressSend = true
	return &cfg
}

// client keeps cookies between requests like a browser.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

type env struct {
	*client
	codes    *codeBox
	users    *repotest.Users
	expenses *repotest.Expenses
}

func newEnv(t *testing.T, cfg *config.Config) *env {
	t.Helper()
	codes := &codeBox{codes: map[string]string{}}
	users := repotest.NewUsers()
	expenses := repotest.NewExpenses()
	router, err := NewRouter(cfg, Deps{
		Users:         users,
		Verifications: repotest.NewVerifications(),
		Expenses:      expenses,
		Incomes:       repotest.NewIncomes(),
		Sender:        codes,
	})
	require.NoError(t, err)
	return &env{
		client:   &client{t: t, router: router, cookies: map[string]*http.Cookie{}},
		codes:    codes,
		users:    users,
		expenses: expenses,
	}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder { return c.do(http.MethodGet, path, nil) }

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}

func registration() url.Values {
	return url.Values{
		"full_name":  {"Test User"},
		"email":      {"test@example.com"},
		"phone_num":  {"9876543210"},
		"address":    {"Test Address, Kathmandu"},
		"password":   {"TestPass123!"},
		"confirm_pw": {"TestPass123!"},
	}
}

// signUp registers, verifies and logs in test@example.com.
func (e *env) signUp() {
	e.t.Helper()
	w := e.post("/registration", registration())
	require.Equal(e.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(e.t, "/verify_email?email=test%40example.com", w.Header().Get("Location"))

	w = e.post("/verify_email", url.Values{"email": {"test@example.com"}, "otp": {e.codes.get("test@example.com")}})
	require.Equal(e.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(e.t, "/login?verified=1", w.Header().Get("Location"))

	w = e.post("/login", url.Values{"email_or_phone": {"test@example.com"}, "password": {"TestPass123!"}})
	require.Equal(e.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(e.t, "/dashboard/1", w.Header().Get("Location"))
}

func TestPublicPages(t *testing.T) {
	e := newEnv(t, testConfig())

	w := e.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	for path, want := range map[string]string{
		"/login":           "Login",
		"/registration":    "register",
		"/forgot_password": "forgot",
		"/verify_email":    "Verify",
	} {
		w := e.get(path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
	}
}

func TestHealthAndStatic(t *testing.T) {
	e := newEnv(t, testConfig())

	w := e.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, e.get("/static/css/style.css").Code)
	assert.Equal(t, http.StatusOK, e.get("/static/js/script.js").Code)
}

func TestNotFound(t *testing.T) {
	e := newEnv(t, testConfig())
	w := e.get("/nonexistent-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestProtectedRoutesRedirect(t *testing.T) {
	e := newEnv(t, testConfig())
	for _, path := range []string{
		"/dashboard/1", "/add_expense/1", "/add_income/1", "/all-transactions/1", "/edit_expense/1/1",
		"/view_reports/1", "/download_reports/1", "/visualize/1", "/chatbot/1",
	} {
		w := e.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestUnavailablePages(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()
	for _, path := range []string{"/view_reports/1", "/download_reports/1", "/visualize/1", "/chatbot/1"} {
		w := e.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "not available yet", path)
	}
	// another user's id is still refused
	assert.Equal(t, http.StatusForbidden, e.get("/view_reports/2").Code)
}

func TestReflectedInputIsEscaped(t *testing.T) {
	e := newEnv(t, testConfig())
	w := e.post("/forgot_password", url.Values{"email": {"<script>alert('XSS')</script>"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")

	w = e.post("/login", url.Values{"email_or_phone": {"<script>alert('XSS')</script>"}, "password": {"x"}})
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestLoginInjectionIsInert(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	anon := &client{t: t, router: e.router, cookies: map[string]*http.Cookie{}}
	w := anon.post("/login", url.Values{"email_or_phone": {"'; DROP TABLE users; --"}, "password": {"test"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email/phone or password")

	_, err := e.users.GetByEmail(context.Background(), "test@example.com")
	assert.NoError(t, err)
}

func TestRegistrationErrors(t *testing.T) {
	e := newEnv(t, testConfig())

	form := registration()
	form.Set("full_name", "John123")
	form.Set("phone_num", "98765")
	form.Set("confirm_pw", "Different123!")
	w := e.post("/registration", form)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "letters and spaces")
	assert.Contains(t, body, "10 digits")
	assert.Contains(t, body, "Passwords must match")
	assert.NotContains(t, body, "TestPass123!")

	require.Equal(t, http.StatusFound, e.post("/registration", registration()).Code)
	w = e.post("/registration", registration())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestUnverifiedLoginGoesToVerify(t *testing.T) {
	e := newEnv(t, testConfig())
	require.Equal(t, http.StatusFound, e.post("/registration", registration()).Code)

	w := e.post("/login", url.Values{"email_or_phone": {"+9779876543210"}, "password": {"TestPass123!"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/verify_email?email=test%40example.com", w.Header().Get("Location"))
	_, hasSession := e.cookies["wealthwise_session"]
	assert.False(t, hasSession)
}

func TestVerifyWrongCode(t *testing.T) {
	e := newEnv(t, testConfig())
	require.Equal(t, http.StatusFound, e.post("/registration", registration()).Code)

	code := e.codes.get("test@example.com")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w := e.post("/verify_email", url.Values{"email": {"test@example.com"}, "otp": {wrong}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid verification code")

	w = e.post("/verify_email", url.Values{"email": {"test@example.com"}, "otp": {"12"}})
	assert.Contains(t, w.Body.String(), "6 digits")

	w = e.post("/verify_email/resend", url.Values{"email": {"test@example.com"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "", e.codes.get("test@example.com"))
}

func TestSessionCookie(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	ck := e.cookies["wealthwise_session"]
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, 24*60*60, ck.MaxAge)

	w := e.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, http.StatusFound, e.get("/dashboard/1").Code)
}

func TestDashboardAndTransactions(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	w := e.get("/dashboard/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, Test User")

	assert.Equal(t, http.StatusForbidden, e.get("/dashboard/2").Code)

	w = e.post("/add_expense/1", url.Values{"date": {"2024-01-15"}, "category": {"Food"}, "amount": {"250.50"}, "description": {"Lunch"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard/1", w.Header().Get("Location"))

	w = e.post("/add_income/1", url.Values{"date": {"2024-01-16"}, "source": {"Salary"}, "amount": {"50000"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = e.get("/all-transactions/1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Rs. 250.50")
	assert.Contains(t, body, "Rs. 50000.00")
	assert.Less(t, strings.Index(body, "Salary"), strings.Index(body, "Lunch"))
}

func TestExpenseValidation(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	cases := []struct {
		form url.Values
		want string
	}{
		{url.Values{"date": {"2024-01-15"}, "category": {"Food"}, "amount": {"-5"}}, "positive number"},
		{url.Values{"date": {"2024-01-15"}, "category": {"Food"}, "amount": {"abc"}}, "positive number"},
		{url.Values{"date": {"15/01/2024"}, "category": {"Food"}, "amount": {"5"}}, "YYYY-MM-DD"},
		{url.Values{"date": {"2024-01-15"}, "category": {"Yachts"}, "amount": {"5"}}, "Choose one of"},
		{url.Values{"category": {"Food"}, "amount": {"5"}}, "This field is required"},
	}
	for _, tc := range cases {
		w := e.post("/add_expense/1", tc.form)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.form.Encode())
		assert.Contains(t, w.Body.String(), tc.want, tc.form.Encode())
	}
	assert.Equal(t, http.StatusForbidden, e.post("/add_expense/2", cases[0].form).Code)
}

func TestEditAndDeleteExpense(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	form := url.Values{"date": {"2024-01-15"}, "category": {"Food"}, "amount": {"10"}}
	require.Equal(t, http.StatusFound, e.post("/add_expense/1", form).Code)

	w := e.get("/edit_expense/1/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="10.00"`)

	form.Set("amount", "12.75")
	form.Set("category", "Bills")
	w = e.post("/edit_expense/1/1", form)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/all-transactions/1", w.Header().Get("Location"))

	got, err := e.expenses.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bills", got.Category)
	assert.Equal(t, "12.75", got.Amount.StringFixed(2))

	assert.Equal(t, http.StatusNotFound, e.get("/edit_expense/1/99").Code)
	assert.Equal(t, http.StatusFound, e.post("/delete_expense/1/1", url.Values{}).Code)
	assert.Equal(t, http.StatusNotFound, e.post("/delete_expense/1/1", url.Values{}).Code)
}

func TestPasswordResetFlow(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	anon := &client{t: t, router: e.router, cookies: map[string]*http.Cookie{}}
	w := anon.post("/forgot_password", url.Values{"email": {"test@example.com"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reset_password?email=test%40example.com", w.Header().Get("Location"))

	// unknown accounts look the same
	w = anon.post("/forgot_password", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, http.StatusFound, w.Code)

	w = anon.post("/reset_password", url.Values{
		"email": {"test@example.com"}, "otp": {e.codes.get("test@example.com")},
		"password": {"NewPass123!"}, "confirm_pw": {"NewPass123!"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/login?reset=1", w.Header().Get("Location"))

	w = anon.post("/login", url.Values{"email_or_phone": {"9876543210"}, "password": {"NewPass123!"}})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestCSRFEnforced(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CSRFEnabled = true
	e := newEnv(t, cfg)

	w := e.post("/login", url.Values{"email_or_phone": {"test@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the page hands out the token the form must echo
	w = e.get("/login")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	const marker = `name="csrf_token" value="`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0)
	token := body[i+len(marker):]
	token = token[:strings.Index(token, `"`)]

	w = e.post("/login", url.Values{"email_or_phone": {"test@example.com"}, "password": {"x"}, "csrf_token": {token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email/phone or password")
}

func TestResendIsNeutral(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	require.Equal(t, http.StatusFound, e.post("/registration", url.Values{
		"full_name": {"Other User"}, "email": {"other@example.com"}, "phone_num": {"9876543211"},
		"address": {"Other Address, Pokhara"}, "password": {"TestPass123!"}, "confirm_pw": {"TestPass123!"},
	}).Code)
	// registration sent one code; two resends reach the window limit
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, e.post("/verify_email/resend", url.Values{"email": {"other@example.com"}}).Code)
	}

	for _, email := range []string{"nobody@example.com", "test@example.com", "other@example.com"} {
		w := e.post("/verify_email/resend", url.Values{"email": {email}})
		assert.Equal(t, http.StatusOK, w.Code, email)
		assert.Contains(t, w.Body.String(), "If the account exists, a new code is on its way.", email)
	}
}

func TestForgotPasswordThrottleIsNeutral(t *testing.T) {
	e := newEnv(t, testConfig())
	e.signUp()

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusFound, e.post("/forgot_password", url.Values{"email": {"test@example.com"}}).Code)
	}
	sent := e.codes.count()

	known := e.post("/forgot_password", url.Values{"email": {"test@example.com"}})
	unknown := e.post("/forgot_password", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, http.StatusFound, known.Code)
	assert.Equal(t, unknown.Code, known.Code)
	assert.Equal(t, sent, e.codes.count(), "throttled request must not send a code")
}
