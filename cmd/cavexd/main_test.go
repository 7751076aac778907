package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRequireAPIKey(t *testing.T) {
	// WHAT: Only the key matching the bcrypt hash passes; everything else is 401.
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := requireAPIKey(string(hash))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
	}))

	do := func(auth string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/documents", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if c := do("Bearer s3cret"); c != 200 {
		t.Errorf("valid key = %d, want 200", c)
	}
	if c := do("Bearer wrong"); c != http.StatusUnauthorized {
		t.Errorf("wrong key = %d, want 401", c)
	}
	if c := do(""); c != http.StatusUnauthorized {
		t.Errorf("missing key = %d, want 401", c)
	}
}
