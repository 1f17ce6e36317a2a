package health

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseCompanyID parses a hexadecimal company identifier such as "0x5959"
// or "5959". A leading sign, a case-insensitive 0x prefix and single
// underscores between digits are accepted.
func ParseCompanyID(s string) (uint16, error) {
	sign, digits := splitSign(s)
	if rest := trimHexPrefix(digits); len(rest) != len(digits) {
		digits = strings.TrimPrefix(rest, "_")
	}
	digits, ok := stripSeparators(digits)
	if !ok {
		return 0, fmt.Errorf("company id %q: %w", s, ErrFormat)
	}
	v, err := parseUint(sign+digits, 16, 0xFFFF)
	if err != nil {
		return 0, fmt.Errorf("company id %q: %w", s, err)
	}
	return uint16(v), nil
}

// ParseDecimal parses a base-10 integer argument. Negative numbers parse
// successfully; it is up to the encoder to reject them with ErrRange.
func ParseDecimal(s string) (int, error) {
	sign, digits := splitSign(s)
	digits, ok := stripSeparators(digits)
	if !ok || strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return 0, fmt.Errorf("%q: %w", s, ErrFormat)
	}
	v, err := strconv.ParseInt(sign+digits, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, numError(err))
	}
	return int(v), nil
}

// splitSign separates a leading sign. A plus sign is dropped.
func splitSign(s string) (sign, rest string) {
	switch {
	case strings.HasPrefix(s, "+"):
		return "", s[1:]
	case strings.HasPrefix(s, "-"):
		return "-", s[1:]
	}
	return "", s
}

// stripSeparators removes underscores that sit between two digits.
func stripSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	if strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") || strings.Contains(s, "__") {
		return "", false
	}
	return strings.ReplaceAll(s, "_", ""), true
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// parseUint parses s in the given base and checks it against max.
func parseUint(s string, base int, max uint64) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		if _, err := strconv.ParseInt(s, base, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return 0, ErrRange
		}
		return 0, ErrFormat
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, numError(err)
	}
	if v > max {
		return 0, ErrRange
	}
	return v, nil
}

// numError maps strconv failures onto the codec error taxonomy.
func numError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrRange
	}
	return ErrFormat
}

// checkUint8 validates that v fits in one octet.
func checkUint8(name string, v int) (uint8, error) {
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%s %d: %w", name, v, ErrRange)
	}
	return uint8(v), nil
}
