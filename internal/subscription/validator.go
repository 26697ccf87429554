package subscription

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinPhoneDigits = 6
	MaxPhoneDigits = 15
)

var (
	contactEmailTag   = "contact_email"
	contactEmailText  = "enter a valid email address"
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	contactPhoneTag  = "contact_phone"
	contactPhoneText = "enter a phone number of 6 to 15 digits"
	digitsRegex      = regexp.MustCompile(`^[0-9]+$`)

	dialCodeTag   = "dial_code"
	dialCodeText  = "select a country dial code"
	dialCodeRegex = regexp.MustCompile(`^\+[0-9]{1,4}$`)

	e164PhoneTag  = "e164_phone"
	e164PhoneText = "enter a phone number in international format"

	fullPhoneTag  = "full_phone"
	fullPhoneText = "this number is too long for the selected dial code"

	requiredTag  = "required"
	requiredText = "this field is required"
)

// Input is what the actor types into the subscribe form.
type Input struct {
	Email    string `json:"email" validate:"required,contact_email"`
	DialCode string `json:"dialCode" validate:"required,dial_code"`
	Phone    string `json:"phone" validate:"required,contact_phone"`
}

// FullPhone joins the dial code and the local number.
func (in Input) FullPhone() string {
	return strings.TrimSpace(in.DialCode) + strings.TrimPrefix(strings.TrimSpace(in.Phone), "+")
}

func (in Input) normalized() Input {
	return Input{
		Email:    strings.TrimSpace(in.Email),
		DialCode: strings.TrimSpace(in.DialCode),
		Phone:    strings.TrimSpace(in.Phone),
	}
}

// FieldErrors maps a form field (by its json name) to an inline message.
type FieldErrors map[string]string

type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

func NewValidator() *Validator {
	v := validator.New()
	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(contactEmailTag, contactEmailValidation)
	_ = v.RegisterValidation(contactPhoneTag, contactPhoneValidation)
	_ = v.RegisterValidation(dialCodeTag, dialCodeValidation)
	_ = v.RegisterValidation(e164PhoneTag, e164PhoneValidation)
	v.RegisterStructValidation(fullPhoneValidation, Input{})

	return &Validator{
		validate: v,
		messages: map[string]string{
			requiredTag:     requiredText,
			contactEmailTag: contactEmailText,
			contactPhoneTag: contactPhoneText,
			dialCodeTag:     dialCodeText,
			e164PhoneTag:    e164PhoneText,
			fullPhoneTag:    fullPhoneText,
		},
	}
}

// Validate checks every field and reports all failures at once. A nil result
// means the input is valid. The dial code and local number together must
// form a valid international number.
func (v *Validator) Validate(in Input) FieldErrors {
	return v.Struct(in.normalized())
}

// Struct validates any struct tagged with the rules registered here, keyed
// by json field name.
func (v *Validator) Struct(s any) FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		msg, ok := v.messages[fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}
	return out
}

func ValidEmail(s string) bool {
	return contactEmailRegex.MatchString(s)
}

// ValidPhone accepts an optional leading '+' followed by 6 to 15 digits.
func ValidPhone(s string) bool {
	digits := strings.TrimPrefix(s, "+")
	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return false
	}
	return digitsRegex.MatchString(digits)
}

// ValidE164 accepts '+' followed by 6 to 15 digits, the form stored by the
// notification endpoint.
func ValidE164(s string) bool {
	return strings.HasPrefix(s, "+") && ValidPhone(s)
}

func contactEmailValidation(fl validator.FieldLevel) bool {
	return ValidEmail(fl.Field().String())
}

func contactPhoneValidation(fl validator.FieldLevel) bool {
	return ValidPhone(fl.Field().String())
}

func dialCodeValidation(fl validator.FieldLevel) bool {
	return dialCodeRegex.MatchString(fl.Field().String())
}

func e164PhoneValidation(fl validator.FieldLevel) bool {
	return ValidE164(fl.Field().String())
}

func fullPhoneValidation(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)
	if !ValidPhone(in.Phone) || !dialCodeRegex.MatchString(in.DialCode) {
		return
	}
	if !ValidE164(in.FullPhone()) {
		sl.ReportError(in.Phone, "phone", "Phone", fullPhoneTag, "")
	}
}
