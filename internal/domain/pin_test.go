package domain_test

import (
	"testing"

	"tokentasks/internal/domain"
)

func TestNewPIN_Validation(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		shouldError bool
	}{
		{name: "valid four digits", raw: "1234", shouldError: false},
		{name: "leading zeros", raw: "0000", shouldError: false},
		{name: "too short", raw: "123", shouldError: true},
		{name: "too long", raw: "12345", shouldError: true},
		{name: "letters", raw: "12ab", shouldError: true},
		{name: "empty", raw: "", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPIN(tt.raw)
			if tt.shouldError && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestPIN_Verify(t *testing.T) {
	pin, err := domain.NewPIN("1234")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !pin.Verify("1234") {
		t.Error("Expected original digits to verify")
	}
	if pin.Verify("4321") {
		t.Error("Expected wrong digits to fail verification")
	}
	if pin.Verify("") {
		t.Error("Expected empty input to fail verification")
	}
}

func TestPIN_HashRoundTrip(t *testing.T) {
	pin, err := domain.NewPIN("9876")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if pin.Hash() == "9876" {
		t.Error("Hash must not equal the raw PIN")
	}

	restored, err := domain.PINFromHash(pin.Hash())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !restored.Verify("9876") {
		t.Error("Expected restored PIN to verify the original digits")
	}

	if _, err := domain.PINFromHash(""); err == nil {
		t.Error("Expected error for empty hash")
	}
}

func TestPIN_Change(t *testing.T) {
	pin, err := domain.NewPIN("1234")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	changed, err := pin.Change("1234", "5678")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !changed.Verify("5678") {
		t.Error("Expected new digits to verify after change")
	}
	if changed.Verify("1234") {
		t.Error("Expected old digits to stop verifying after change")
	}

	if _, err := pin.Change("0000", "5678"); err == nil {
		t.Error("Expected error when current PIN is wrong")
	}
	if _, err := pin.Change("1234", "56"); err == nil {
		t.Error("Expected error when replacement PIN is invalid")
	}
}
