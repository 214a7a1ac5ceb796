package creditform

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// Violation is one broken input constraint.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Same grammar as an HTML "valid floating-point number".
var htmlNumberPattern = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)

var constraints, constraintsTrans = mustBuildConstraints()

// CheckConstraints applies the checks a browser performs before it lets the
// form submit: every field required, an email address for user, numbers
// matching the input step, and select values drawn from their catalog.
// Nothing beyond that is checked.
func CheckConstraints(a Application) error {
	err := constraints.Struct(a)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Field:   fe.Field(),
			Code:    "validation_" + fe.Tag(),
			Message: fe.Translate(constraintsTrans),
		})
	}
	return &ConstraintError{Violations: out}
}

func mustBuildConstraints() (*validator.Validate, ut.Translator) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("htmlnumber", validateHTMLNumber); err != nil {
		panic(err)
	}

	eng := en.New()
	trans, found := ut.New(eng, eng).GetTranslator("en")
	if !found {
		panic("en translator not found")
	}

	messages := map[string]string{
		"required": "This field is required.",
		"email":    "Enter a valid email address.",
		"oneof":    "Select a valid choice. {0} is not one of the available choices.",
	}
	for tag, text := range messages {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, valueString(fe))
				return msg
			},
		)
		if err != nil {
			panic(err)
		}
	}

	err := v.RegisterTranslation("htmlnumber", trans,
		func(t ut.Translator) error {
			if err := t.Add("htmlnumber", "Enter a number.", true); err != nil {
				return err
			}
			if err := t.Add("htmlnumber_whole", "Enter a whole number.", true); err != nil {
				return err
			}
			return t.Add("htmlnumber_step", "Enter a number with at most two decimal places.", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			key := "htmlnumber"
			if htmlNumberPattern.MatchString(valueString(fe)) {
				key = "htmlnumber_step"
				if fe.Param() == "1" {
					key = "htmlnumber_whole"
				}
			}
			msg, _ := t.T(key)
			return msg
		},
	)
	if err != nil {
		panic(err)
	}
	return v, trans
}

// validateHTMLNumber accepts a valid floating-point number that is a whole
// multiple of the step given as the tag parameter.
func validateHTMLNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !htmlNumberPattern.MatchString(s) {
		return false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	step, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil || step <= 0 {
		return true
	}
	q := val / step
	return math.Abs(q-math.Round(q)) < 1e-6
}

func valueString(fe validator.FieldError) string {
	if s, ok := fe.Value().(string); ok {
		return s
	}
	return ""
}
