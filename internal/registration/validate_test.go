package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/types"
)

func validForm() types.RegistrationForm {
	return types.RegistrationForm{
		FirstName: "Marie",
		LastName:  "Curie",
		Email:     "marie@udem.ca",
		StudentID: "20123456",
		Course:    calculus,
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator(DefaultRules())
	assert.Empty(t, v.Validate(validForm()))
}

func TestValidate_Email(t *testing.T) {
	v := NewValidator(DefaultRules())

	tests := []struct {
		email string
		ok    bool
	}{
		{"marie@udem.ca", true},
		{"m.curie@mail.udem.ca", true},
		{"a@b.c", true},
		{"", false},
		{"bad-email", false},
		{"marie@udem", false},
		{"@udem.ca", false},
		{"marie@.ca", false},
		{"marie@udem.", false},
		{"marie curie@udem.ca", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			f := validForm()
			f.Email = tt.email
			errs := v.Validate(f)
			if tt.ok {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, []string{"invalid email"}, errs.Messages())
			assert.Equal(t, []string{FieldEmail}, errs.Fields())
		})
	}
}

func TestValidate_StrictEmail(t *testing.T) {
	v := NewValidator(Rules{StudentIDLength: 8, StrictEmail: true})

	f := validForm()
	assert.Empty(t, v.Validate(f))

	f.Email = "marie@@udem.ca"
	assert.Equal(t, []string{"invalid email"}, v.Validate(f).Messages())
}

func TestValidate_StudentID(t *testing.T) {
	v := NewValidator(DefaultRules())

	for _, id := range []string{"", "12", "2012345", "201234567", "2012345a", "２０１２３４５６"} {
		t.Run(id, func(t *testing.T) {
			f := validForm()
			f.StudentID = id
			assert.Equal(t, []string{"invalid student id"}, v.Validate(f).Messages())
		})
	}
}

func TestValidate_ConfiguredStudentIDLength(t *testing.T) {
	v := NewValidator(RulesFromConfig(config.Validation{StudentIDLength: 6}))

	f := validForm()
	f.StudentID = "123456"
	assert.Empty(t, v.Validate(f))

	f.StudentID = "20123456"
	assert.Equal(t, []string{"invalid student id"}, v.Validate(f).Messages())
}

func TestValidate_CollectsAllInFormOrder(t *testing.T) {
	v := NewValidator(DefaultRules())

	errs := v.Validate(types.RegistrationForm{})

	assert.Equal(t, []string{
		"firstName is required",
		"lastName is required",
		"invalid email",
		"invalid student id",
		"course is required",
	}, errs.Messages())
	assert.Equal(t, []string{FieldFirstName, FieldLastName, FieldEmail, FieldStudentID, FieldCourse}, errs.Fields())
}

func TestNormalize(t *testing.T) {
	f := Normalize(types.RegistrationForm{
		FirstName: "  Marie ",
		LastName:  "\tCurie",
		Email:     " marie@udem.ca ",
		StudentID: "20123456 ",
		Course:    types.Course{Code: " MAT1000 "},
	})

	assert.Equal(t, "Marie", f.FirstName)
	assert.Equal(t, "Curie", f.LastName)
	assert.Equal(t, "marie@udem.ca", f.Email)
	assert.Equal(t, "20123456", f.StudentID)
	assert.Equal(t, "MAT1000", f.Course.Code)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: FieldFirstName, Message: "firstName is required"},
		{Field: FieldEmail, Message: "invalid email"},
	}
	assert.Equal(t, "firstName is required; invalid email", errs.Error())
}

func TestNormalize_Session(t *testing.T) {
	tests := map[types.Session]types.Session{
		"autumn":  types.Autumn,
		" Hiver ": types.Winter,
		"été":     types.Summer,
		"Summer":  types.Summer,
		" Spring": "Spring",
		"":        "",
	}
	for raw, want := range tests {
		f := validForm()
		f.Course.Session = raw
		assert.Equal(t, want, Normalize(f).Course.Session, raw)
	}
}

func TestValidate_Session(t *testing.T) {
	v := NewValidator(DefaultRules())

	for _, session := range []types.Session{"", "Spring"} {
		f := validForm()
		f.Course.Session = session

		errs := v.Validate(Normalize(f))
		assert.Equal(t, []string{"invalid session"}, errs.Messages(), session)
		assert.Equal(t, []string{FieldCourse}, errs.Fields(), session)
	}

	// No course at all is one error, not two.
	f := validForm()
	f.Course = types.Course{}
	assert.Equal(t, []string{"course is required"}, v.Validate(f).Messages())
}
