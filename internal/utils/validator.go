package utils

import (
	"html"
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9+\-() ]+$`)
)

type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
	policy      *bluemonday.Policy
}

var (
	instance *Validator
	once     sync.Once
)

const maxSanitizeRounds = 8

// GetValidator returns the process wide validator with the custom rules registered.
func GetValidator() *Validator {
	once.Do(func() {
		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: newEmailVerifier(),
			policy:      bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func newEmailVerifier() func(string) bool {
	configuration, err := truemail.NewConfiguration(truemail.ConfigurationAttr{
		VerifierEmail:         "verifier@contacts-api.local",
		ValidationTypeDefault: "mx",
		SmtpFailFast:          true,
	})
	if err != nil {
		LogMessage("warn", "Email verifier unavailable: "+err.Error())
		return func(string) bool { return true }
	}

	return func(email string) bool {
		return truemail.IsValid(email, configuration)
	}
}

func registerCustomValidators(v *validator.Validate) {
	if err := v.RegisterValidation("username_validation", usernameValidation); err != nil {
		LogMessage("error", "Could not register username_validation: "+err.Error())
	}

	if err := v.RegisterValidation("phone_validation", phoneValidation); err != nil {
		LogMessage("error", "Could not register phone_validation: "+err.Error())
	}
}

func usernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func phoneValidation(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// SanitizeData strips markup from every string and *string field of the struct obj points to.
// Fields tagged `sanitize:"-"` are left as they are.
func (v *Validator) SanitizeData(obj interface{}) {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return
	}

	value = value.Elem()
	for i := 0; i < value.NumField(); i++ {
		if value.Type().Field(i).Tag.Get("sanitize") == "-" {
			continue
		}

		field := value.Field(i)
		switch {
		case field.Kind() == reflect.String && field.CanSet():
			field.SetString(v.sanitize(field.String()))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(v.sanitize(field.Elem().String()))
		}
	}
}

// sanitize removes markup and keeps literal characters such as apostrophes intact.
// Entity-encoded markup is decoded and stripped again until the value is stable.
func (v *Validator) sanitize(s string) string {
	for i := 0; i < maxSanitizeRounds; i++ {
		next := html.UnescapeString(v.policy.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	return v.policy.Sanitize(s)
}
