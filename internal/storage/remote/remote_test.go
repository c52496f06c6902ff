package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/http/router"
	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/storage/sqlite"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// newServer starts the real API over a seeded temp-dir database.
func newServer(t *testing.T, catalog []sqlite.CatalogEntry) *Client {
	t.Helper()

	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Seed(context.Background(), catalog)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(router.New(db, registration.NewValidator(registration.DefaultRules()), logger))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", time.Second)
}

func marie(course types.Course) types.RegistrationForm {
	return types.RegistrationForm{
		FirstName: "Marie",
		LastName:  "Curie",
		Email:     "marie@udem.ca",
		StudentID: "20123456",
		Course:    course,
	}
}

func TestListCourses(t *testing.T) {
	c := newServer(t, sqlite.DefaultCatalog())

	courses, err := c.ListCourses(context.Background(), types.Summer)
	require.NoError(t, err)
	assert.Equal(t, []types.Course{
		{Code: "IFT1015", Name: "Programming 1", Session: types.Summer},
		{Code: "IFT2035", Name: "Programming Languages", Session: types.Summer},
	}, courses)
}

func TestListCourses_EmptyIsNotNil(t *testing.T) {
	c := newServer(t, nil)

	courses, err := c.ListCourses(context.Background(), types.Winter)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestListCourses_InvalidSession(t *testing.T) {
	c := newServer(t, nil)

	_, err := c.ListCourses(context.Background(), types.Session(""))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "a session must be selected", err.Error())
}

func TestListCourses_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListCourses(context.Background(), types.Autumn)
	assert.ErrorIs(t, err, storage.ErrCoursesUnavailable)
}

func TestRegisterStudent(t *testing.T) {
	c := newServer(t, sqlite.DefaultCatalog())
	calculus := types.Course{Code: "MAT1000", Name: "Calculus", Session: types.Autumn}

	reg, err := c.RegisterStudent(context.Background(), marie(calculus))
	require.NoError(t, err)
	assert.Equal(t, "MAT1000", reg.CourseCode)
	assert.NotEmpty(t, reg.ID)
	assert.False(t, reg.CreatedAt.IsZero())

	_, err = c.RegisterStudent(context.Background(), marie(calculus))
	assert.ErrorIs(t, err, storage.ErrAlreadyRegistered)
	assert.Equal(t, storage.ErrAlreadyRegistered.Error(), err.Error())
}

func TestRegisterStudent_Rejections(t *testing.T) {
	c := newServer(t, []sqlite.CatalogEntry{
		{Course: types.Course{Code: "MAT1000", Name: "Calculus", Session: types.Autumn}, Capacity: 0},
	})

	_, err := c.RegisterStudent(context.Background(), marie(types.Course{Code: "MAT1000", Session: types.Autumn}))
	assert.ErrorIs(t, err, storage.ErrCourseFull)

	_, err = c.RegisterStudent(context.Background(), marie(types.Course{Code: "NOPE000", Session: types.Autumn}))
	assert.ErrorIs(t, err, storage.ErrCourseNotFound)
}

func TestRegisterStudent_ServerValidation(t *testing.T) {
	c := newServer(t, sqlite.DefaultCatalog())

	form := marie(types.Course{Code: "MAT1000", Session: types.Autumn})
	form.Email = "bad-email"
	form.StudentID = "12"

	_, err := c.RegisterStudent(context.Background(), form)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation", apiErr.Code)
	assert.Equal(t, []string{"invalid email", "invalid student id"}, apiErr.Errors)
	assert.Equal(t, apiErr.Errors, apiErr.Messages())
}

func TestRegisterStudent_SessionSpelling(t *testing.T) {
	c := newServer(t, sqlite.DefaultCatalog())

	reg, err := c.RegisterStudent(context.Background(), marie(types.Course{Code: "MAT1000", Session: "autumn"}))
	require.NoError(t, err)
	assert.Equal(t, "MAT1000", reg.CourseCode)

	_, err = c.RegisterStudent(context.Background(), marie(types.Course{Code: "IFT1015"}))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, []string{"invalid session"}, apiErr.Messages())
}
