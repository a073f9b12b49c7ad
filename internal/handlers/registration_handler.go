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

const resendNotice = "If the account exists, a new code is on its way."

type RegistrationHandler struct {
	userService services.UserService
	codeLength  int
}

func NewRegistrationHandler(userService services.UserService, codeLength int) *RegistrationHandler {
	return &RegistrationHandler{userService: userService, codeLength: codeLength}
}

// @Summary      Registration page
// @Tags         Registration
// @Produce      html
// @Success      200
// @Router       /registration [get]
func (h *RegistrationHandler) RegistrationPage(c *gin.Context) {
	render(c, http.StatusOK, "registration.html", gin.H{"title": "Register", "form": validation.RegistrationForm{}})
}

// @Summary      Register an account
// @Description  Validates the form, creates the user and emails a verification code.
// @Tags         Registration
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        full_name   formData  string  true  "Letters and spaces only"
// @Param        email       formData  string  true  "Email"
// @Param        phone_num   formData  string  true  "10 digits, optional +977"
// @Param        address     formData  string  true  "Address"
// @Param        password    formData  string  true  "Password"
// @Param        confirm_pw  formData  string  true  "Password confirmation"
// @Success      302
// @Failure      200  "form re-rendered with errors"
// @Router       /registration [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var in validation.RegistrationForm
	if err := c.ShouldBind(&in); err != nil {
		log.Printf("[user][register] bind failed: %v", err)
	}

	form, errs := validation.ValidateRegistration(in)
	if !errs.OK() {
		render(c, http.StatusOK, "registration.html", gin.H{"title": "Register", "form": redacted(in), "errors": errs.Messages()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), form)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		render(c, http.StatusOK, "registration.html", gin.H{
			"title": "Register", "form": redacted(in),
			"errors": map[string]string{validation.FieldEmail: "Email already registered"},
		})
		return
	case errors.Is(err, services.ErrPhoneTaken):
		render(c, http.StatusOK, "registration.html", gin.H{
			"title": "Register", "form": redacted(in),
			"errors": map[string]string{validation.FieldPhone: "Phone number already registered"},
		})
		return
	case err != nil:
		renderError(c, "[user][register]", err)
		return
	}
	c.Redirect(http.StatusFound, "/verify_email?email="+url.QueryEscape(user.Email))
}

// redacted drops the passwords before a form is echoed back.
func redacted(f validation.RegistrationForm) validation.RegistrationForm {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

func (h *RegistrationHandler) verifyPage(c *gin.Context, code int, email string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = "Verify email"
	data["email"] = email
	data["code_length"] = h.codeLength
	render(c, code, "verify_email.html", data)
}

// @Summary      Email verification page
// @Tags         Registration
// @Produce      html
// @Param        email  query  string  false  "Email the code was sent to"
// @Success      200
// @Router       /verify_email [get]
func (h *RegistrationHandler) VerifyPage(c *gin.Context) {
	h.verifyPage(c, http.StatusOK, strings.TrimSpace(c.Query("email")), nil)
}

// @Summary      Confirm email with the one-time code
// @Tags         Registration
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email  formData  string  true  "Email"
// @Param        otp    formData  string  true  "Verification code"
// @Success      302
// @Failure      200  "form re-rendered with errors"
// @Router       /verify_email [post]
func (h *RegistrationHandler) Verify(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm(validation.FieldEmail))
	code := strings.TrimSpace(c.PostForm(validation.FieldOTP))

	errs := map[string]string{}
	if !validation.IsEmail(email) {
		errs[validation.FieldEmail] = "Invalid email address"
	}
	if err := validation.OTP(code, h.codeLength); err != nil {
		errs[validation.FieldOTP] = err.Error()
	}
	if len(errs) > 0 {
		h.verifyPage(c, http.StatusOK, email, gin.H{"errors": errs})
		return
	}

	_, err := h.userService.VerifyEmail(c.Request.Context(), email, code)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/login?verified=1")
	case errors.Is(err, services.ErrAlreadyVerified):
		c.Redirect(http.StatusFound, "/login?verified=1")
	case errors.Is(err, services.ErrCodeExpired):
		h.verifyPage(c, http.StatusOK, email, gin.H{"error": "This code has expired. Request a new one."})
	case errors.Is(err, services.ErrTooManyAttempts):
		h.verifyPage(c, http.StatusOK, email, gin.H{"error": "Too many attempts. Request a new code."})
	case errors.Is(err, services.ErrCodeInvalid):
		h.verifyPage(c, http.StatusOK, email, gin.H{"error": "Invalid verification code"})
	default:
		renderError(c, "[user][verify]", err)
	}
}

// @Summary      Send a new verification code
// @Tags         Registration
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email  formData  string  true  "Email"
// @Success      200
// @Router       /verify_email/resend [post]
func (h *RegistrationHandler) Resend(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm(validation.FieldEmail))
	if !validation.IsEmail(email) {
		h.verifyPage(c, http.StatusOK, email, gin.H{"errors": map[string]string{validation.FieldEmail: "Invalid email address"}})
		return
	}

	// verified, throttled and unknown accounts all get the same page
	err := h.userService.ResendVerification(c.Request.Context(), email)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrAlreadyVerified), errors.Is(err, services.ErrResendThrottled):
		log.Printf("[user][resend] not sent: %v", err)
	default:
		renderError(c, "[user][resend]", err)
		return
	}
	h.verifyPage(c, http.StatusOK, email, gin.H{"notice": resendNotice})
}
