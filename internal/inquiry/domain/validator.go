package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"buildcare_site/platform/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Error messages shown next to the offending field.
const (
	MsgNameRequired        = "Name is required"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgPhoneRequired       = "Phone number is required"
	MsgPhoneInvalid        = "Please enter a valid phone number"
	MsgServiceRequired     = "Please select a service"
	MsgProjectTypeRequired = "Project type is required"
	MsgMessageRequired     = "Message is required"
	MsgMessageTooShort     = "Message must be at least 10 characters"

	// MinMessageLength is counted in characters after trimming.
	MinMessageLength = 10
)

const (
	tagNotBlank    = "notblank"
	tagEmailShape  = "emailshape"
	tagPhoneChars  = "phonechars"
	tagMinMessage  = "minmessage"
	tagService     = "catalogservice"
	tagProjectType = "projecttype"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Options is the value space of the service and project type selectors.
type Options interface {
	Has(id string) bool
	HasProjectType(id string) bool
}

// FieldErrors holds at most one message per field.
type FieldErrors map[string]string

// OK reports whether there are no errors.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// Clear removes the error for one field.
func (e FieldErrors) Clear(field string) { delete(e, field) }

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

type checkedFields struct {
	Name    string `validate:"notblank"`
	Email   string `validate:"notblank,emailshape"`
	Phone   string `validate:"notblank,phonechars"`
	Message string `validate:"notblank,minmessage"`
}

var fieldByStructName = map[string]string{
	"Name":    FieldName,
	"Email":   FieldEmail,
	"Phone":   FieldPhone,
	"Message": FieldMessage,
}

var messages = map[string]map[string]string{
	FieldName:        {tagNotBlank: MsgNameRequired},
	FieldEmail:       {tagNotBlank: MsgEmailRequired, tagEmailShape: MsgEmailInvalid},
	FieldPhone:       {tagNotBlank: MsgPhoneRequired, tagPhoneChars: MsgPhoneInvalid},
	FieldMessage:     {tagNotBlank: MsgMessageRequired, tagMinMessage: MsgMessageTooShort},
	FieldService:     {tagNotBlank: MsgServiceRequired, tagService: MsgServiceRequired},
	FieldProjectType: {tagNotBlank: MsgProjectTypeRequired, tagProjectType: MsgProjectTypeRequired},
}

// Validator applies the inquiry rules. It never fails on malformed input;
// malformed input produces field errors.
type Validator struct {
	val *validator.Validator
}

// NewValidator registers the inquiry rules against the given option set.
func NewValidator(opts Options) *Validator {
	val := validator.New()
	mustRegister(val, tagNotBlank, validators.NotBlank)
	mustRegister(val, tagEmailShape, func(fl playground.FieldLevel) bool {
		return emailShape.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(val, tagPhoneChars, func(fl playground.FieldLevel) bool {
		return isPhoneChars(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(val, tagMinMessage, func(fl playground.FieldLevel) bool {
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= MinMessageLength
	})
	mustRegister(val, tagService, func(fl playground.FieldLevel) bool {
		return opts.Has(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(val, tagProjectType, func(fl playground.FieldLevel) bool {
		return opts.HasProjectType(strings.TrimSpace(fl.Field().String()))
	})
	return &Validator{val: val}
}

func mustRegister(val *validator.Validator, tag string, fn playground.Func) {
	if err := val.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks every required field of variant v and returns one message
// per failing field. Company and any attachment never fail validation.
func (v *Validator) Validate(f Fields, variant Variant) FieldErrors {
	errs := FieldErrors{}

	err := v.val.Struct(checkedFields{Name: f.Name, Email: f.Email, Phone: f.Phone, Message: f.Message})
	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fieldByStructName[fe.StructField()]
			if _, seen := errs[field]; !seen {
				errs[field] = messages[field][fe.Tag()]
			}
		}
	}

	selector := variant.SelectorField()
	tag := tagService
	if variant == VariantProject {
		tag = tagProjectType
	}
	if err := v.val.Var(f.Get(selector), tagNotBlank+","+tag); err != nil {
		errs[selector] = messages[selector][validator.FailedTag(err)]
	}

	return errs
}

// ValidateField checks a single field, for inline feedback as a visitor types.
func (v *Validator) ValidateField(f Fields, variant Variant, field string) string {
	return v.Validate(f, variant)[field]
}

func isPhoneChars(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '+', r == '-', r == '(', r == ')':
		default:
			return false
		}
	}
	return true
}
