package util

import "testing"

func TestUIDMatcher(t *testing.T) {
	valid := []string{"reader", "a-b-c", "user42", "0ok"}
	for _, s := range valid {
		if !UIDMatcher.MatchString(s) {
			t.Errorf("Expected %q to be a valid uid", s)
		}
	}

	invalid := []string{"", "ab", "Reader", "under_score", "-leading", "trailing-", "with space"}
	for _, s := range invalid {
		if UIDMatcher.MatchString(s) {
			t.Errorf("Expected %q to be an invalid uid", s)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("reader@example.com") {
		t.Errorf("Expected valid email to pass")
	}
	for _, s := range []string{"", "reader", "reader@", "@example.com"} {
		if ValidateEmail(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestIsDigits(t *testing.T) {
	for _, s := range []string{"0", "9780441013593"} {
		if !IsDigits(s) {
			t.Errorf("Expected %q to be digits", s)
		}
	}
	for _, s := range []string{"", "12a3", "12 3", "1.2", "-12"} {
		if IsDigits(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestConvertStringToInt32(t *testing.T) {
	n, err := ConvertStringToInt32("42")
	if err != nil || n != 42 {
		t.Fatalf("Expected 42, got %d (%v)", n, err)
	}
	if _, err := ConvertStringToInt32("not-a-number"); err == nil {
		t.Fatalf("Expected parse error")
	}
	if _, err := ConvertStringToInt32("99999999999"); err == nil {
		t.Fatalf("Expected overflow error")
	}
}

func TestRandomString(t *testing.T) {
	a, err := RandomString(32)
	if err != nil {
		t.Fatalf("Failed to generate random string: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("Expected length 32, got %d", len(a))
	}
	b, err := RandomString(32)
	if err != nil {
		t.Fatalf("Failed to generate random string: %v", err)
	}
	if a == b {
		t.Fatalf("Expected two random strings to differ")
	}
}
