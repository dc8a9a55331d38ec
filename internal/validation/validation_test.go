package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"carlos@familia.com", true},
		{"  ana@familia.com  ", true},
		{"no-at-sign", false},
		{"", false},
		{"missing@tld", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateEmail(%q) error = %v, want valid=%v", tt.email, err, tt.valid)
			}
		})
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"", true}, // optional
		{"18:00", true},
		{"09:30", true},
		{"24:00", false},
		{"9:30", false},
		{"18h00", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateTimeOfDay(tt.value)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateTimeOfDay(%q) error = %v, want valid=%v", tt.value, err, tt.valid)
			}
		})
	}
}

func TestValidateWeekdays(t *testing.T) {
	tests := []struct {
		name  string
		days  []int
		valid bool
	}{
		{"empty set", nil, true},
		{"monday and wednesday", []int{1, 3}, true},
		{"full week", []int{0, 1, 2, 3, 4, 5, 6}, true},
		{"out of range", []int{7}, false},
		{"negative", []int{-1}, false},
		{"duplicate", []int{1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeekdays(tt.days)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateWeekdays(%v) error = %v, want valid=%v", tt.days, err, tt.valid)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-09-10"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := ValidateDate("10/09/2026"); err == nil {
		t.Error("malformed date accepted")
	}
}
