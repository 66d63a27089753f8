package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
)

// Validator validates structs by their validate tags and reports violations with english messages
type Validator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// New builds Validator which reports json field names
func New() (*Validator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}

	return &Validator{validator: v, translator: trans}, nil
}

// MustNew is like New but panics on error
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Struct validates s, returns *errors.ValidationErr on violations
func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.validationErr(ve)
	}
	return err
}

func (v *Validator) validationErr(ve validator.ValidationErrors) error {
	vErr := &apperrors.ValidationErr{}
	for _, e := range ve {
		vErr.Violation(apperrors.Violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return vErr
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// EchoValidator adapts Validator to echo.Validator
type EchoValidator struct {
	v *Validator
}

// Echo builds echo.Validator on top of v
func Echo(v *Validator) echo.Validator {
	return &EchoValidator{v: v}
}

func (ev *EchoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
