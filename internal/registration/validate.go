package registration

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// Field names as reported in validation errors and to HighlightInvalidFields.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldStudentID = "studentId"
	FieldCourse    = "course"
)

// fieldSession is the course's session as the validator names it. Errors
// on it are reported against FieldCourse.
const fieldSession = "session"

// Rules are the adjustable parts of form validation.
type Rules struct {
	// StudentIDLength is the exact number of digits in a student id.
	StudentIDLength int
	// StrictEmail uses full RFC-style address checking instead of the
	// basic local@domain.tld shape.
	StrictEmail bool
}

// DefaultRules match the institution the client was first written for:
// 8-digit student ids, basic email shape.
func DefaultRules() Rules {
	return Rules{StudentIDLength: 8}
}

// RulesFromConfig maps the validation section of the config file.
func RulesFromConfig(cfg config.Validation) Rules {
	return Rules{
		StudentIDLength: cfg.StudentIDLength,
		StrictEmail:     cfg.StrictEmail,
	}
}

// Validator checks registration forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the custom "student_id",
// "registration_email" and "course_session" tags, the first two configured
// from rules.
func NewValidator(rules Rules) *Validator {
	if rules.StudentIDLength <= 0 {
		rules.StudentIDLength = DefaultRules().StudentIDLength
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name (firstName, not FirstName).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	n := rules.StudentIDLength
	_ = v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return isStudentID(fl.Field().String(), n)
	})

	// A course without a code is reported as missing, not as having a bad
	// session.
	_ = v.RegisterValidation("course_session", func(fl validator.FieldLevel) bool {
		if course, ok := fl.Parent().Interface().(types.Course); ok && course.Code == "" {
			return true
		}
		return types.Session(fl.Field().String()).Valid()
	})

	if rules.StrictEmail {
		v.RegisterAlias("registration_email", "email")
	} else {
		_ = v.RegisterValidation("registration_email", func(fl validator.FieldLevel) bool {
			return isBasicEmail(fl.Field().String())
		})
	}

	return &Validator{validate: v}
}

// Normalize trims every text field of the form and spells the course's
// session the way the store does ("automne" becomes Autumn). An unknown
// session is left trimmed for Validate to reject.
func Normalize(form types.RegistrationForm) types.RegistrationForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.StudentID = strings.TrimSpace(form.StudentID)
	form.Course.Code = strings.TrimSpace(form.Course.Code)
	if session, err := types.ParseSession(string(form.Course.Session)); err == nil {
		form.Course.Session = session
	} else {
		form.Course.Session = types.Session(strings.TrimSpace(string(form.Course.Session)))
	}
	return form
}

// Validate checks every field of an already-normalized form and returns
// all failures at once, in form order. A nil result means the form is valid.
func (v *Validator) Validate(form types.RegistrationForm) ValidationErrors {
	var errs ValidationErrors

	err := v.validate.Struct(form)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// InvalidValidationError: only happens on programmer error.
			return ValidationErrors{{Field: "form", Message: err.Error()}}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
	}

	return errs
}

// fieldError turns one validator failure into the user-facing message.
// Email and student id report a single message whichever rule failed.
func fieldError(fe validator.FieldError) ValidationError {
	field := fe.Field()
	if field == fieldSession {
		return ValidationError{Field: FieldCourse, Message: "invalid session"}
	}
	if strings.HasPrefix(fe.Namespace(), "RegistrationForm.course.") || field == "code" {
		field = FieldCourse
	}

	switch field {
	case FieldEmail:
		return ValidationError{Field: field, Message: "invalid email"}
	case FieldStudentID:
		return ValidationError{Field: field, Message: "invalid student id"}
	case FieldCourse:
		return ValidationError{Field: field, Message: "course is required"}
	}

	if fe.Tag() == "required" {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return ValidationError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
}

func isStudentID(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isBasicEmail accepts local@domain where the domain contains a dot that
// is neither its first nor last character.
func isBasicEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && !strings.HasSuffix(domain, ".")
}
