package register

import (
	"context"
	"slices"
	"testing"

	"github.com/jakopako/gosignup/internal/browser"
	"github.com/jakopako/gosignup/internal/credentials"
)

var creds = credentials.Credentials{
	Email:    "user1234@examplemail.com",
	Username: "user_abcdef",
	Password: "Abcdef123456",
}

func testTarget() Target {
	return Target{
		Name: "Superbase",
		URL:  "https://example.com/superbase-signup",
		Fields: Fields{
			Email:    "email",
			Username: "user",
			Password: "pass",
			Submit:   "submit",
		},
	}
}

func TestRegisterSuccess(t *testing.T) {
	target := testTarget()
	ms := browser.NewMockSession(&browser.Config{
		MockPages: []browser.MockPage{
			{URL: target.URL, Content: "<html><head><title>Welcome</title></head></html>", Fields: []string{"email", "user", "pass", "submit"}},
		},
	})

	if ok := Register(context.Background(), ms, &target, creds); !ok {
		t.Fatal("expected registration to succeed")
	}

	expectedFilled := map[string]string{
		"email": creds.Email,
		"user":  creds.Username,
		"pass":  creds.Password,
	}
	for k, v := range expectedFilled {
		if ms.Filled[k] != v {
			t.Errorf("expected field '%s' to be filled with '%s', got '%s'", k, v, ms.Filled[k])
		}
	}
	expectedCalls := []string{
		"navigate https://example.com/superbase-signup",
		"fill email",
		"fill user",
		"fill pass",
		"click submit",
	}
	if !slices.Equal(ms.Calls, expectedCalls) {
		t.Errorf("expected calls %v, got %v", expectedCalls, ms.Calls)
	}
}

func TestRegisterFailures(t *testing.T) {
	target := testTarget()
	tests := []struct {
		name  string
		pages []browser.MockPage
	}{
		{"page not found", nil},
		{"missing username field", []browser.MockPage{{URL: target.URL, Fields: []string{"email", "pass", "submit"}}}},
		{"missing submit", []browser.MockPage{{URL: target.URL, Fields: []string{"email", "user", "pass"}}}},
		{"field names of other target", []browser.MockPage{{URL: target.URL, Fields: []string{"email", "username", "password", "submit"}}}},
	}

	for _, tt := range tests {
		ms := browser.NewMockSession(&browser.Config{MockPages: tt.pages})
		if ok := Register(context.Background(), ms, &target, creds); ok {
			t.Errorf("%s: expected registration to fail", tt.name)
		}
		if len(ms.Clicked) != 0 {
			t.Errorf("%s: expected no click, got %v", tt.name, ms.Clicked)
		}
	}
}

func TestRegisterCancelledDuringWait(t *testing.T) {
	target := testTarget()
	target.PageLoadWaitMS = 60000
	ms := browser.NewMockSession(&browser.Config{
		MockPages: []browser.MockPage{{URL: target.URL, Fields: []string{"email", "user", "pass", "submit"}}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if ok := Register(ctx, ms, &target, creds); ok {
		t.Fatal("expected registration to fail on a cancelled context")
	}
	if len(ms.Filled) != 0 {
		t.Errorf("expected no fields to be filled, got %v", ms.Filled)
	}
}

func TestStatusMessage(t *testing.T) {
	if m := StatusMessage(Result{Target: "Bolt", Success: true}); m != "Completed" {
		t.Errorf("unexpected status message '%s'", m)
	}
	if m := StatusMessage(Result{Target: "Bolt", Success: false}); m != "May need manual verification" {
		t.Errorf("unexpected status message '%s'", m)
	}
}

func TestDefaultTargets(t *testing.T) {
	targets := DefaultTargets()
	if len(targets) != 2 {
		t.Fatalf("expected 2 default targets, got %d", len(targets))
	}
	if targets[0].Name != "Bolt" || targets[0].Fields.Username != "username" || targets[0].Fields.Password != "password" {
		t.Errorf("unexpected first default target %+v", targets[0])
	}
	if targets[1].Name != "Superbase" || targets[1].Fields.Username != "user" || targets[1].Fields.Password != "pass" {
		t.Errorf("unexpected second default target %+v", targets[1])
	}
}
