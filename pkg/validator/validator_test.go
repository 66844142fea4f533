package validator

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ana@example.com", true},
		{"  ana@example.com ", true},
		{"ana.perez+citas@clinica.co", true},
		{"ana", false},
		{"ana@", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}

func TestValidateOpaqueID(t *testing.T) {
	for _, id := range []string{"P1", "vet-42", "a_b"} {
		if !ValidateOpaqueID(id) {
			t.Errorf("ValidateOpaqueID(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"", "../etc", "a b", "id?x=1"} {
		if ValidateOpaqueID(id) {
			t.Errorf("ValidateOpaqueID(%q) = true, want false", id)
		}
	}
}
