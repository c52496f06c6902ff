package router

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/types"
)

type emptyStore struct{}

func (emptyStore) ListCourses(context.Context, types.Session) ([]types.Course, error) {
	return []types.Course{}, nil
}

func (emptyStore) RegisterStudent(context.Context, types.RegistrationForm) (types.Registration, error) {
	return types.Registration{}, nil
}

func TestRoutes(t *testing.T) {
	var logs bytes.Buffer
	h := New(emptyStore{}, registration.NewValidator(registration.DefaultRules()),
		slog.New(slog.NewTextHandler(&logs, nil)))

	tests := []struct {
		method, target string
		status         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/courses?session=Winter", http.StatusOK},
		{http.MethodPost, "/api/registrations", http.StatusBadRequest},
		{http.MethodGet, "/api/registrations", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/students", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.target)
	}

	assert.Contains(t, logs.String(), "path=/api/courses")
	assert.Contains(t, logs.String(), "status=200")
}
