package validation

import "strings"

// Form field names, shared with the HTML templates.
const (
	FieldFullName     = "full_name"
	FieldEmail        = "email"
	FieldPhone        = "phone_num"
	FieldAddress      = "address"
	FieldPassword     = "password"
	FieldConfirm      = "confirm_pw"
	FieldEmailOrPhone = "email_or_phone"
	FieldOTP          = "otp"
)

const maxAddressLength = 255

type RegistrationForm struct {
	FullName        string `form:"full_name"`
	Email           string `form:"email"`
	Phone           string `form:"phone_num"`
	Address         string `form:"address"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_pw"`
}

type LoginForm struct {
	EmailOrPhone string `form:"email_or_phone"`
	Password     string `form:"password"`
}

type ResetForm struct {
	Email           string `form:"email"`
	OTP             string `form:"otp"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_pw"`
}

func required() *Error {
	return newError(KindRequired, "This field is required")
}

// ValidateRegistration checks every field in a fixed order and returns the
// normalized form (trimmed, lower-case email, 10-digit phone). Passwords are
// never trimmed.
func ValidateRegistration(in RegistrationForm) (RegistrationForm, FieldErrors) {
	out := RegistrationForm{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		Address:         strings.TrimSpace(in.Address),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}
	errs := FieldErrors{}

	errs.add(FieldFullName, Name(out.FullName))

	switch {
	case out.Email == "":
		errs.add(FieldEmail, required())
	case !IsEmail(out.Email):
		errs.add(FieldEmail, newError(KindInvalidFormat, "Invalid email address"))
	}

	if out.Phone == "" {
		errs.add(FieldPhone, required())
	} else if phone, err := Phone(out.Phone); err != nil {
		errs.add(FieldPhone, err)
	} else {
		out.Phone = phone
	}

	switch {
	case out.Address == "":
		errs.add(FieldAddress, required())
	case len(out.Address) > maxAddressLength:
		errs.add(FieldAddress, newError(KindInvalidLength, "Address must be at most 255 characters"))
	}

	errs.add(FieldPassword, Password(out.Password))
	errs.add(FieldConfirm, confirm(out.Password, out.ConfirmPassword))
	return out, errs
}

// ValidateLogin only checks presence; credentials are verified by the user service.
func ValidateLogin(in LoginForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.EmailOrPhone) == "" {
		errs.add(FieldEmailOrPhone, required())
	}
	if strings.TrimSpace(in.Password) == "" {
		errs.add(FieldPassword, required())
	}
	return errs
}

func ValidateReset(in ResetForm, codeLength int) (ResetForm, FieldErrors) {
	out := ResetForm{
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		OTP:             strings.TrimSpace(in.OTP),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}
	errs := FieldErrors{}
	switch {
	case out.Email == "":
		errs.add(FieldEmail, required())
	case !IsEmail(out.Email):
		errs.add(FieldEmail, newError(KindInvalidFormat, "Invalid email address"))
	}
	errs.add(FieldOTP, OTP(out.OTP, codeLength))
	errs.add(FieldPassword, Password(out.Password))
	errs.add(FieldConfirm, confirm(out.Password, out.ConfirmPassword))
	return out, errs
}

func confirm(password, confirmation string) error {
	if confirmation == "" {
		return required()
	}
	if password != confirmation {
		return newError(KindMismatch, "Passwords must match")
	}
	return nil
}
