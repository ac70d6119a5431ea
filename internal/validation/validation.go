package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
)

var aadhaarPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}$`)

// FieldError is a single violation, addressed by its path inside the document
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a document, not just the
// first. It is distinct from persistence errors; callers map it to a client
// error response.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("case data validation failed: %d violation(s)", len(e.Errors))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under json field names so paths match the document
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return aadhaarPattern.MatchString(fl.Field().String())
	})

	for tag, values := range enumTags {
		values := values
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			for _, member := range values {
				if s == member {
					return true
				}
			}
			return false
		})
	}

	return v
}

// ValidateCase checks a decoded case document against the fixed shape and
// enumerated value sets. Empty-string fields are normalized to nil first;
// an empty string is never a meaningful value in this domain. Returns a
// *ValidationError listing all violations, or nil.
func ValidateCase(doc *casegraph.CaseDocument) error {
	normalizeEmptyStrings(reflect.ValueOf(doc))

	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldPath(fe),
			Message: violationMessage(fe),
		})
	}
	return &ValidationError{Errors: fieldErrors}
}

// fieldPath strips the root struct name from the error namespace, leaving
// paths like incidents[0].victims[1].person.person_gender
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func violationMessage(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "url":
		return "must be a valid URL"
	case "aadhaar":
		return "must match the format NNNN-NNNN-NNNN"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		if values, ok := enumTags[tag]; ok {
			return "must be one of: " + strings.Join(values, ", ")
		}
		return fmt.Sprintf("failed %s validation", tag)
	}
}

// normalizeEmptyStrings walks the document and nils out optional string
// fields that arrived as "", at every nesting level
func normalizeEmptyStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		normalizeEmptyStrings(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.Kind() == reflect.Ptr && f.Type().Elem().Kind() == reflect.String {
				if !f.IsNil() && f.Elem().String() == "" && f.CanSet() {
					f.Set(reflect.Zero(f.Type()))
				}
				continue
			}
			normalizeEmptyStrings(f)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			normalizeEmptyStrings(v.Index(i))
		}
	}
}
