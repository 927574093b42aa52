package validation

import (
	"testing"
)

func TestParseEmployeeID(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
		expected    int64
	}{
		{
			name:     "Valid id",
			raw:      "1",
			expected: 1,
		},
		{
			name:     "Valid large id",
			raw:      "9223372036854775807",
			expected: 9223372036854775807,
		},
		{
			name:     "Surrounding spaces",
			raw:      " 42 ",
			expected: 42,
		},
		{
			name:        "Empty",
			raw:         "",
			expectError: true,
		},
		{
			name:        "Zero",
			raw:         "0",
			expectError: true,
		},
		{
			name:        "Negative",
			raw:         "-3",
			expectError: true,
		},
		{
			name:        "Not a number",
			raw:         "abc",
			expectError: true,
		},
		{
			name:        "Overflow",
			raw:         "9223372036854775808",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseEmployeeID(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, got nil", tt.raw)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, result)
			}
		})
	}
}
