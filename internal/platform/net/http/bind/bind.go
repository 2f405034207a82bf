// Package bind decodes JSON bodies and validates them with go-playground/validator
package bind

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "videobot/internal/platform/errors"
	"videobot/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/goccy/go-json"
)

// ValidatorSvc holds the validator singleton and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// messages name fields by their json tag
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		translate(v, trans, "notblank", "{0} must not be blank", false)
		translate(v, trans, "min", "{0} must be at least {1}", true)
		translate(v, trans, "max", "{0} must be at most {1}", true)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// translate registers a short message for tag; withParam feeds the tag param as {1}
func translate(v *validator.Validate, trans ut.Translator, tag, text string, withParam bool) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			params := []string{fe.Field()}
			if withParam {
				params = append(params, fe.Param())
			}
			msg, _ := t.T(tag, params...)
			return msg
		},
	)
}

// Validate runs struct validation and maps the first failure to a validation error
// carrying the offending field
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 64KB
	DisallowUnknown bool  // default true
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 64 << 10, DisallowUnknown: true}
}

// ParseJSON decodes the request body into T and validates it
// an empty body is a JSON error; failures carry perr codes for the envelope
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = io.LimitReader(r.Body, o.MaxBytes)
	}

	// peek one byte so an empty body gets a clear message
	first := make([]byte, 1)
	if n, _ := body.Read(first); n == 0 {
		return zero, perr.JSONErrf("empty body")
	}
	dec := json.NewDecoder(io.MultiReader(bytes.NewReader(first), body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON")
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
