package browser

import (
	"context"
	"testing"
)

func TestNewSessionUnknownType(t *testing.T) {
	if _, err := NewSession(context.Background(), &Config{Type: "firefox"}); err == nil {
		t.Fatal("expected an error for an unknown session type")
	}
}

func TestNewSessionMock(t *testing.T) {
	s, err := NewSession(context.Background(), &Config{Type: MOCK_SESSION_TYPE})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*MockSession); !ok {
		t.Fatalf("expected a *MockSession, got %T", s)
	}
}

func TestSelectorByName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"email", `[name="email"]`},
		{"user", `[name="user"]`},
		{`we"ird`, `[name="we\"ird"]`},
	}

	for _, tt := range tests {
		if s := selectorByName(tt.input); s != tt.expected {
			t.Errorf("selectorByName(%q) = %q; want %q", tt.input, s, tt.expected)
		}
	}
}

func TestMockSession(t *testing.T) {
	ctx := context.Background()
	ms := NewMockSession(&Config{
		MockPages: []MockPage{
			{URL: "https://example.com/signup", Content: "<html></html>", Fields: []string{"email", "submit"}},
		},
	})

	if err := ms.Fill(ctx, "email", "a@b.c"); err == nil {
		t.Fatal("expected an error when filling before navigating")
	}
	if err := ms.Navigate(ctx, "https://example.com/missing"); err == nil {
		t.Fatal("expected an error for an unknown page")
	}
	if err := ms.Navigate(ctx, "https://example.com/signup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ms.Fill(ctx, "email", "a@b.c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ms.Fill(ctx, "password", "secret"); err == nil {
		t.Fatal("expected an error for a missing field")
	}
	if err := ms.Click(ctx, "submit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Filled["email"] != "a@b.c" {
		t.Errorf("expected email to be filled with 'a@b.c', got '%s'", ms.Filled["email"])
	}
	if html, err := ms.HTML(ctx); err != nil || html != "<html></html>" {
		t.Errorf("HTML() = %q, %v", html, err)
	}
	ms.Close()
	ms.Close()
	if ms.CloseCount != 2 {
		t.Errorf("expected CloseCount 2, got %d", ms.CloseCount)
	}
}
