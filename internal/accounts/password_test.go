package accounts_test

import (
	"testing"

	"github.com/maximumcrm/salon-scheduler/internal/accounts"
	"github.com/maximumcrm/salon-scheduler/internal/httperr"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantCode string
	}{
		{"ok", "Passw0rd", ""},
		{"minimal length", "aB1xyz", ""},
		{"too short", "aB1", "password_too_short"},
		{"no digit", "Password", "password_too_weak"},
		{"no upper", "passw0rd", "password_too_weak"},
		{"no lower", "PASSW0RD", "password_too_weak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounts.ValidatePassword(tt.password)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("want ok, got %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("want %q, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := accounts.HashPassword("Passw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Passw0rd" {
		t.Fatal("password stored in clear")
	}

	if !accounts.CheckPassword(hash, "Passw0rd") {
		t.Fatal("correct password rejected")
	}
	if accounts.CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
