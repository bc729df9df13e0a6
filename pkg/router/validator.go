package router

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/dsggregory/otpctl/pkg/device"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// ArgumentError maps an argument name to what is wrong with it
type ArgumentError map[string]string

func (ae ArgumentError) Error() string {
	if len(ae) == 0 {
		return "invalid arguments"
	}
	names := make([]string, 0, len(ae))
	for k := range ae {
		names = append(names, k)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, k := range names {
		msgs = append(msgs, ae[k])
	}
	return strings.Join(msgs, "; ")
}

func (ae ArgumentError) Kind() device.Kind { return device.KindUsage }

// argValidator checks per-command argument structs. Field names in messages come from the
// `arg` struct tag.
type argValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newArgValidator() (*argValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("arg"); name != "" {
			return name
		}
		return strings.ToLower(fld.Name)
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	return &argValidator{validate: validate, translator: enTrans}, nil
}

// Validate returns an ArgumentError listing every invalid argument of args
func (v *argValidator) Validate(args any) error {
	if err := v.validate.Struct(args); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		ae := make(ArgumentError)
		for _, fe := range validateErrs {
			ae[fe.Field()] = fe.Translate(v.translator)
		}
		return ae
	}
	return nil
}
