package routes

import (
	"github.com/gin-gonic/gin"

	"wealthwise/internal/handlers"
	"wealthwise/internal/middleware"
	"wealthwise/internal/web"
)

func SetupRoutes(
	r *gin.Engine,
	requireAuth gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	registrationHandler *handlers.RegistrationHandler,
	passwordHandler *handlers.PasswordHandler,
	financeHandler *handlers.FinanceHandler,
) *gin.Engine {

	// ---- public
	r.GET("/", authHandler.Index)
	r.GET("/healthz", handlers.Healthz)
	r.StaticFS("/static", web.Static())

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/registration", registrationHandler.RegistrationPage)
	r.POST("/registration", registrationHandler.Register)
	r.GET("/verify_email", registrationHandler.VerifyPage)
	r.POST("/verify_email", registrationHandler.Verify)
	r.POST("/verify_email/resend", registrationHandler.Resend)

	r.GET("/forgot_password", passwordHandler.ForgotPage)
	r.POST("/forgot_password", passwordHandler.Forgot)
	r.GET("/reset_password", passwordHandler.ResetPage)
	r.POST("/reset_password", passwordHandler.Reset)

	// ---- protected: session + path :id must be the session user
	owner := []gin.HandlerFunc{requireAuth, middleware.RequireOwner("id")}
	protected := r.Group("/", owner...)
	{
		protected.GET("/dashboard/:id", financeHandler.Dashboard)
		protected.GET("/all-transactions/:id", financeHandler.Transactions)

		protected.GET("/add_expense/:id", financeHandler.AddExpensePage)
		protected.POST("/add_expense/:id", financeHandler.AddExpense)
		protected.GET("/edit_expense/:id/:expense_id", financeHandler.EditExpensePage)
		protected.POST("/edit_expense/:id/:expense_id", financeHandler.EditExpense)
		protected.POST("/delete_expense/:id/:expense_id", financeHandler.DeleteExpense)

		protected.GET("/add_income/:id", financeHandler.AddIncomePage)
		protected.POST("/add_income/:id", financeHandler.AddIncome)
		protected.GET("/edit_income/:id/:income_id", financeHandler.EditIncomePage)
		protected.POST("/edit_income/:id/:income_id", financeHandler.EditIncome)
		protected.POST("/delete_income/:id/:income_id", financeHandler.DeleteIncome)

		protected.GET("/view_reports/:id", handlers.Unavailable)
		protected.GET("/download_reports/:id", handlers.Unavailable)
		protected.GET("/visualize/:id", handlers.Unavailable)
		protected.GET("/chatbot/:id", handlers.Unavailable)
	}

	r.NoRoute(handlers.NotFound)
	return r
}
