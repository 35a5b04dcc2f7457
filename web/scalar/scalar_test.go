package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/adscreen/web/scalar"
)

func TestModuleServesIndex(t *testing.T) {
	m := scalar.NewModule("/scalar", "/api/openapi.json")

	req := httptest.NewRequest("GET", "/scalar/", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), `data-url="/api/openapi.json"`) {
		t.Errorf("body does not reference spec url: %s", rec.Body.String())
	}
}
