package internal

import (
	"errors"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	play "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	"github.com/hashicorp/go-multierror"
)

var (
	validateOnce sync.Once
	validate     *play.Validate
	translator   ut.Translator
)

// ValidateStruct checks the `validate` tags of target.
// Each failed field contributes one translated error.
func ValidateStruct(target any) error {
	v, trans := validator()
	return translate(v.Struct(target), trans)
}

// ValidateVar checks a single value against a validation tag.
func ValidateVar(field any, tag string) error {
	v, trans := validator()
	return translate(v.Var(field, tag), trans)
}

func validator() (*play.Validate, ut.Translator) {
	validateOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		validate = play.New()
		if err := entrans.RegisterDefaultTranslations(validate, translator); err != nil {
			panic(err)
		}
	})
	return validate, translator
}

func translate(err error, trans ut.Translator) error {
	if err == nil {
		return nil
	}
	var fieldErrors play.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	var result *multierror.Error
	for _, fe := range fieldErrors {
		result = multierror.Append(result, errors.New(fe.Translate(trans)))
	}
	return result.ErrorOrNil()
}
