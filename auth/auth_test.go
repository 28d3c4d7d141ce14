package auth

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleStudent, false},
		{"student", RoleStudent, false},
		{"staff", RoleStaff, false},
		{"admin", RoleAdmin, false},
		{"  Admin  ", RoleAdmin, false},
		{"STAFF", RoleStaff, false},
		{"superuser", "", true},
		{"root", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseRole(%q) error = %v, want ErrInvalidInput", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice@Campus.EDU", "alice@campus.edu"},
		{"  bob@campus.edu  ", "bob@campus.edu"},
		{"carol@campus.edu", "carol@campus.edu"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
