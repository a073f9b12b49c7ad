package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/middleware"
	"wealthwise/internal/services"
	"wealthwise/internal/validation"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	cookie      middleware.SessionCookie
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, cookie: cookie}
}

// Index sends visitors to the login page.
func (h *AuthHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// @Summary      Login page
// @Tags         Auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	data := gin.H{"title": "Login", "form": validation.LoginForm{}}
	switch {
	case c.Query("verified") != "":
		data["notice"] = "Your email is verified. You can now log in."
	case c.Query("reset") != "":
		data["notice"] = "Your password has been updated. Please log in."
	}
	render(c, http.StatusOK, "login.html", data)
}

// @Summary      Log in
// @Description  Accepts an email address or a 10-digit phone number (optionally +977) with the password. Sets the session cookie.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email_or_phone  formData  string  true  "Email or phone"
// @Param        password        formData  string  true  "Password"
// @Success      302
// @Failure      200  "form re-rendered with errors"
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form validation.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("[auth][login] bad request: bind failed: err=%v", err)
	}

	if errs := validation.ValidateLogin(form); !errs.OK() {
		render(c, http.StatusOK, "login.html", gin.H{"title": "Login", "form": form, "errors": errs.Messages()})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), form.EmailOrPhone, form.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		render(c, http.StatusOK, "login.html", gin.H{
			"title": "Login",
			"form":  validation.LoginForm{EmailOrPhone: form.EmailOrPhone},
			"error": "Invalid email/phone or password",
		})
		return
	case errors.Is(err, services.ErrNotVerified):
		log.Printf("[auth][login] unverified user_id=%d", user.ID)
		c.Redirect(http.StatusFound, "/verify_email?email="+url.QueryEscape(user.Email))
		return
	case err != nil:
		renderError(c, "[auth][login]", err)
		return
	}

	token, _, err := h.authService.IssueSession(user.ID)
	if err != nil {
		renderError(c, "[auth][login]", err)
		return
	}
	h.cookie.Set(c, token)
	log.Printf("[auth][login] success user_id=%d", user.ID)
	c.Redirect(http.StatusFound, "/dashboard/"+strconv.Itoa(user.ID))
}

// @Summary      Log out
// @Tags         Auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}
