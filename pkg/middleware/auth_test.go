package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scrib/pkg/errors"
	"scrib/pkg/models"
)

type stubAuth struct {
	session *models.Session
}

func (s stubAuth) IsAuthenticated(*http.Request) *models.Session {
	return s.session
}

func TestRequireAuthAPIRejects(t *testing.T) {
	called := false
	h := RequireAuthAPI(stubAuth{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	if called {
		t.Fatal("next handler ran without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errors.FrontendError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "NOT_AUTHENTICATED" {
		t.Fatalf("code = %s", body.Code)
	}
}

func TestRequireAuthAPIStoresSession(t *testing.T) {
	want := &models.Session{ID: "abc", Guest: true}
	var got *models.Session
	h := RequireAuthAPI(stubAuth{session: want})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFrom(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	if got != want {
		t.Fatalf("session = %+v", got)
	}
}
