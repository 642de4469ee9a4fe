// Package validation checks the sign-up, sign-in and profile-edit forms.
//
// Every check is a pure function of the form values. The result maps a field
// name to its message; a field missing from the result is valid. Malformed
// input never panics, it is reported as a failure of the affected field.
package validation

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

// Field names reported in a Result.
const (
	FieldName               = "name"
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldPasswordConfirm    = "password_confirm"
	FieldOldPassword        = "oldPassword"
	FieldNewPassword        = "newPassword"
	FieldConfirmNewPassword = "confirmNewPassword"

	// FieldForm is used when a failure cannot be attributed to one field.
	FieldForm = "form"
)

// MinPasswordLength is the shortest password accepted by the service.
const MinPasswordLength = 6

const (
	msgNameRequired            = "Name is required"
	msgEmailRequired           = "E-mail is required"
	msgEmailInvalid            = "Invalid e-mail"
	msgPasswordRequired        = "Password is required"
	msgPasswordTooShort        = "Password must be at least 6 characters"
	msgPasswordConfirmRequired = "Password confirmation is required"
	msgPasswordsMismatch       = "Passwords must match"
	msgOldPasswordRequired     = "Old password is required"
	msgNewPasswordConfirmReq   = "New password confirmation is required"
	msgNewPasswordsMismatch    = "The new passwords do not match"
)

// Result maps a field to its failure message.
type Result map[string]string

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Err returns nil for a valid result and an apperr validation error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	fields := make(map[string]string, len(r))
	for k, v := range r {
		fields[k] = v
	}
	return apperr.Validation(fields)
}

type signUpValues struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// SignUp validates the account creation form.
func SignUp(f models.SignUpForm) Result {
	v := signUpValues(f)
	return toResult(validation.ValidateStruct(&v,
		validation.Field(&v.Name, validation.Required.Error(msgNameRequired)),
		validation.Field(&v.Email,
			validation.Required.Error(msgEmailRequired),
			is.Email.Error(msgEmailInvalid),
		),
		validation.Field(&v.Password,
			validation.Required.Error(msgPasswordRequired),
			validation.RuneLength(MinPasswordLength, 0).Error(msgPasswordTooShort),
		),
		validation.Field(&v.PasswordConfirm,
			validation.Required.Error(msgPasswordConfirmRequired),
			validation.By(stringEquals(v.Password, msgPasswordsMismatch)),
		),
	))
}

type signInValues struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn validates the sign-in form.
func SignIn(f models.SignInForm) Result {
	v := signInValues(f)
	return toResult(validation.ValidateStruct(&v,
		validation.Field(&v.Email,
			validation.Required.Error(msgEmailRequired),
			is.Email.Error(msgEmailInvalid),
		),
		validation.Field(&v.Password, validation.Required.Error(msgPasswordRequired)),
	))
}

type profileValues struct {
	Name               string `json:"name"`
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ProfileEdit validates the profile form. An empty new password means the
// password is not being changed; its confirmation is then ignored.
func ProfileEdit(f models.ProfileEditForm) Result {
	v := profileValues{
		Name:               f.Name,
		OldPassword:        f.OldPassword,
		NewPassword:        f.NewPassword,
		ConfirmNewPassword: f.ConfirmNewPassword,
	}

	var confirmRules []validation.Rule
	if f.ChangesPassword() {
		confirmRules = append(confirmRules,
			validation.Required.Error(msgNewPasswordConfirmReq),
			validation.By(stringEquals(v.NewPassword, msgNewPasswordsMismatch)),
		)
	}

	return toResult(validation.ValidateStruct(&v,
		validation.Field(&v.Name, validation.Required.Error(msgNameRequired)),
		validation.Field(&v.OldPassword, validation.Required.Error(msgOldPasswordRequired)),
		validation.Field(&v.NewPassword, validation.RuneLength(MinPasswordLength, 0).Error(msgPasswordTooShort)),
		validation.Field(&v.ConfirmNewPassword, confirmRules...),
	))
}

// stringEquals checks that the value equals want exactly.
func stringEquals(want, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(message)
		}
		return nil
	}
}

func toResult(err error) Result {
	res := Result{}
	if err == nil {
		return res
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for name, fe := range fieldErrs {
			if fe != nil {
				res[name] = fe.Error()
			}
		}
		return res
	}
	res[FieldForm] = err.Error()
	return res
}
