package pages

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("pages: repository is required")
	ErrLocaleRequired     = errors.New("pages: locale is required")
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrTitleRequired      = errors.New("pages: title is required")
	ErrUnknownLocale      = errors.New("pages: unknown locale")
	ErrPageNotFound       = errors.New("pages: page not found")
)

// PageNotFoundError is returned when a page cannot be located.
type PageNotFoundError struct {
	Locale string
	Key    string
}

func (e *PageNotFoundError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("page %q not found", e.Key)
	}
	return fmt.Sprintf("page %q not found in locale %q", e.Key, e.Locale)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}
