package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kbukum/faber/errors"
)

func TestNewProblem(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		typ    string
	}{
		{"frozen", errors.Frozen("db", "removed"), http.StatusConflict, "FROZEN", "urn:faber:error:frozen"},
		{"type mismatch", errors.TypeMismatch("db", "string", "int"), http.StatusUnprocessableEntity, "TYPE_MISMATCH", "urn:faber:error:type_mismatch"},
		{"plain error", fmt.Errorf("secret internals"), http.StatusInternalServerError, "", "about:blank"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProblem(tc.err, "/x")
			if p.Status != tc.status || p.Code != tc.code || p.Type != tc.typ {
				t.Errorf("unexpected problem %+v", p)
			}
			if p.Title != http.StatusText(tc.status) || p.Instance != "/x" {
				t.Errorf("unexpected title or instance %+v", p)
			}
			if tc.code == "" && p.Detail != "" {
				t.Errorf("plain errors must not leak their message, got %q", p.Detail)
			}
		})
	}
}
