package models

import (
	"errors"
	"testing"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "hunter22" {
		t.Fatalf("password must be stored hashed")
	}
	if !u.CheckPassword("hunter22") {
		t.Fatalf("expected password to verify against its hash")
	}
	if u.CheckPassword("wrong") {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestCreateUser_ShortPassword(t *testing.T) {
	if _, err := CreateUser("alice@example.com", "12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "@nope"} {
		if _, err := CreateUser(email, "hunter22"); err == nil {
			t.Fatalf("expected validation error for email %q", email)
		}
	}
}
