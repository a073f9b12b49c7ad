package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/services"
	"wealthwise/internal/validation"
)

type PasswordHandler struct {
	resets     services.PasswordResetService
	codeLength int
}

func NewPasswordHandler(resets services.PasswordResetService, codeLength int) *PasswordHandler {
	return &PasswordHandler{resets: resets, codeLength: codeLength}
}

// @Summary      Forgot password page
// @Tags         Password
// @Produce      html
// @Success      200
// @Router       /forgot_password [get]
func (h *PasswordHandler) ForgotPage(c *gin.Context) {
	render(c, http.StatusOK, "forgot_password.html", gin.H{"title": "Forgot password"})
}

// @Summary      Request a password reset code
// @Description  Always answers the same way whether or not the account exists.
// @Tags         Password
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email  formData  string  true  "Account email"
// @Success      302
// @Router       /forgot_password [post]
func (h *PasswordHandler) Forgot(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm(validation.FieldEmail))
	if !validation.IsEmail(email) {
		render(c, http.StatusOK, "forgot_password.html", gin.H{
			"title": "Forgot password", "email": email,
			"errors": map[string]string{validation.FieldEmail: "Invalid email address"},
		})
		return
	}

	if err := h.resets.RequestReset(c.Request.Context(), email); err != nil {
		renderError(c, "[password-reset]", err)
		return
	}
	c.Redirect(http.StatusFound, "/reset_password?email="+url.QueryEscape(strings.ToLower(email)))
}

func (h *PasswordHandler) resetPage(c *gin.Context, code int, data gin.H) {
	data["title"] = "Reset password"
	data["code_length"] = h.codeLength
	render(c, code, "reset_password.html", data)
}

// @Summary      Reset password page
// @Tags         Password
// @Produce      html
// @Param        email  query  string  false  "Account email"
// @Success      200
// @Router       /reset_password [get]
func (h *PasswordHandler) ResetPage(c *gin.Context) {
	h.resetPage(c, http.StatusOK, gin.H{
		"form":   validation.ResetForm{Email: strings.TrimSpace(c.Query("email"))},
		"notice": "If an account exists for this email, a reset code has been sent.",
	})
}

// @Summary      Reset password with the emailed code
// @Tags         Password
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email       formData  string  true  "Account email"
// @Param        otp         formData  string  true  "Reset code"
// @Param        password    formData  string  true  "New password"
// @Param        confirm_pw  formData  string  true  "Confirmation"
// @Success      302
// @Failure      200  "form re-rendered with errors"
// @Router       /reset_password [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var in validation.ResetForm
	if err := c.ShouldBind(&in); err != nil {
		log.Printf("[password-reset] bind failed: %v", err)
	}

	form, errs := validation.ValidateReset(in, h.codeLength)
	echo := validation.ResetForm{Email: form.Email}
	if !errs.OK() {
		h.resetPage(c, http.StatusOK, gin.H{"form": echo, "errors": errs.Messages()})
		return
	}

	err := h.resets.ResetPassword(c.Request.Context(), form.Email, form.OTP, form.Password)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/login?reset=1")
	case errors.Is(err, services.ErrCodeExpired):
		h.resetPage(c, http.StatusOK, gin.H{"form": echo, "error": "This code has expired. Request a new one."})
	case errors.Is(err, services.ErrTooManyAttempts):
		h.resetPage(c, http.StatusOK, gin.H{"form": echo, "error": "Too many attempts. Request a new code."})
	case errors.Is(err, services.ErrCodeInvalid):
		h.resetPage(c, http.StatusOK, gin.H{"form": echo, "error": "Invalid or expired reset code"})
	default:
		renderError(c, "[password-reset]", err)
	}
}
