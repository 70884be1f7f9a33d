package sync

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, 0},
		{"401", errors.New("submit assignment: status 401: token invalid"), CategorySessionExpired},
		{"unauthorized text", errors.New("request unauthorized"), CategorySessionExpired},
		{"404", errors.New("fetch enrollment: status 404: gone"), CategoryNotFound},
		{"not found text", errors.New("enrollment not found"), CategoryNotFound},
		{"duplicate", errors.New("assignment already submitted"), CategoryDuplicate},
		{"connection refused", errors.New("dial tcp: connection refused"), CategoryConnectivity},
		{"timeout", errors.New("context deadline exceeded (Client.Timeout)"), CategoryConnectivity},
		{"no such host", errors.New("dial tcp: lookup api: no such host"), CategoryConnectivity},
		{"unknown", errors.New("boom"), CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("Classify(nil) = %v, want nil", got)
				}
				return
			}
			if got.Category != tt.want {
				t.Errorf("Classify(%v).Category = %v, want %v", tt.err, got.Category, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error must unwrap to the original")
			}
		})
	}
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	orig := &Error{Category: CategoryDuplicate, Err: errors.New("x")}
	if got := Classify(orig); got != orig {
		t.Errorf("Classify(classified) = %v, want the same error", got)
	}

	// Wrapping inside fmt.Errorf still re-classifies by text, which is
	// acceptable: the category markers survive in the message.
	wrapped := fmt.Errorf("push: %w", orig)
	if got := Classify(wrapped); got.Category != CategoryDuplicate {
		t.Errorf("Classify(wrapped).Category = %v, want duplicate", got.Category)
	}
}

func TestUserMessages(t *testing.T) {
	categories := []Category{
		CategoryGeneric,
		CategoryConnectivity,
		CategorySessionExpired,
		CategoryNotFound,
		CategoryDuplicate,
	}
	seen := make(map[string]Category)
	for _, c := range categories {
		msg := c.UserMessage()
		if msg == "" {
			t.Errorf("category %v has no user message", c)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("categories %v and %v share message %q", prev, c, msg)
		}
		seen[msg] = c
	}
}
