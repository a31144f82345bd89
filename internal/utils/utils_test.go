package utils

import "testing"

func TestIsOptionCode(t *testing.T) {
	valid := []string{"3AB", "001", "ZZZ", "A1B"}
	for _, c := range valid {
		if !IsOptionCode(c) {
			t.Errorf("expected %q to be a valid option code", c)
		}
	}

	invalid := []string{"", "3A", "3ABX", "3ab", "3A ", "3-B"}
	for _, c := range invalid {
		if IsOptionCode(c) {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}
