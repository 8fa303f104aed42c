package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	TitleMinLen       = 1
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// ErrValidation marks input that failed field validation.
var ErrValidation = errors.New("validation failed")

func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen || n > TitleMaxLen {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrValidation, TitleMinLen, TitleMaxLen)
	}
	return nil
}

func ValidateDescription(desc *string) error {
	if desc == nil {
		return nil
	}
	if utf8.RuneCountInString(*desc) > DescriptionMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, DescriptionMaxLen)
	}
	return nil
}

// Validate checks a task before creation. Empty status and priority are
// allowed and mean the defaults.
func (n NewTask) Validate() error {
	if err := ValidateTitle(n.Title); err != nil {
		return err
	}
	if err := ValidateDescription(n.Description); err != nil {
		return err
	}
	if n.Status != "" && !n.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, n.Status)
	}
	if n.Priority != "" && !n.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, n.Priority)
	}
	return nil
}

// Validate checks only the fields present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description.Set {
		if err := ValidateDescription(p.Description.Value); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, *p.Priority)
	}
	return nil
}
