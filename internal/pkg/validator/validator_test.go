package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-31", "2024-02-29", "1999-12-01"}
	invalid := []string{"2025-13-01", "2025-02-30", "31-01-2025", "2025/01/31", "", "yesterday"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidNationalID(t *testing.T) {
	valid := []string{"1012345678", "2098765432"}
	invalid := []string{"3012345678", "101234567", "10123456789", "1o12345678", ""}
	for _, id := range valid {
		if !IsValidNationalID(id) {
			t.Errorf("IsValidNationalID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidNationalID(id) {
			t.Errorf("IsValidNationalID(%q) = true, want false", id)
		}
	}
}

func TestIsValidIBAN(t *testing.T) {
	valid := []string{"SA0380000000608010167519", " sa0380000000608010167519 "}
	invalid := []string{"SA038000000060801016751", "AE0380000000608010167519", "SA03800000006080101675199", ""}
	for _, iban := range valid {
		if !IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = false, want true", iban)
		}
	}
	for _, iban := range invalid {
		if IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = true, want false", iban)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
	}
	invalid := []string{"run-1", "g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", ""}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "company_id", Message: "is required"},
		{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["company_id"] != "is required" {
		t.Errorf("company_id message = %q", m["company_id"])
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
