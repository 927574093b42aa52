package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseEmployeeID parses a path segment into a positive employee identifier
func ParseEmployeeID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("employee id is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("employee id must be an integer: %s", raw)
	}

	if id <= 0 {
		return 0, fmt.Errorf("employee id must be positive: %d", id)
	}

	return id, nil
}
