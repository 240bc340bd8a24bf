package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"taskmanager/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	Validator.RegisterTagNameFunc(fieldName)

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

// fieldName reports fields by their json (or query) name.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]

		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return field.Name
}

func addCustomTranslations() {
	register := func(tag, text string, params func(fe validator.FieldError) []string) {
		_ = Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, params(fe)...)
			return t
		})
	}

	fieldOnly := func(fe validator.FieldError) []string { return []string{fe.Field()} }
	withParam := func(fe validator.FieldError) []string { return []string{fe.Field(), fe.Param()} }

	register("required", "{0} is required", fieldOnly)
	register("email", "{0} must be a valid email", fieldOnly)
	register("oneof", "{0} must be one of: {1}", withParam)

	register("min", "{0} must be at least {1}", func(fe validator.FieldError) []string {
		if fe.Kind() == reflect.String {
			return []string{fe.Field(), fe.Param() + " characters"}
		}
		return withParam(fe)
	})

	register("max", "{0} must be at most {1}", func(fe validator.FieldError) []string {
		if fe.Kind() == reflect.String {
			return []string{fe.Field(), fe.Param() + " characters"}
		}
		return withParam(fe)
	})
}

func FormatValidationErrors(err error) []response.ValidationError {
	errs := make([]response.ValidationError, 0)

	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, response.ValidationError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return errs
}
