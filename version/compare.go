// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if av[i] != bv[i] {
			return lo.Ternary(av[i] > bv[i], 1, -1), nil
		}
	}

	return 0, nil
}

// parseSemver splits a MAJOR.MINOR.PATCH string, tolerating a leading 'v'.
func parseSemver(s string) ([3]int, error) {
	var v [3]int

	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return v, fmt.Errorf("malformed version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return v, fmt.Errorf("malformed version %q: %w", s, err)
		}
		v[i] = n
	}

	return v, nil
}
