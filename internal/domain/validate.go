package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"academy-service/internal/apperr"
)

// MaxNameLength bounds every name and title.
const MaxNameLength = 60

func validateName(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is a required field", apperr.ErrInvalid, field)
	}
	if utf8.RuneCountInString(v) > MaxNameLength {
		return fmt.Errorf("%w: maximum length for the %s is %d characters", apperr.ErrInvalid, field, MaxNameLength)
	}
	return nil
}
