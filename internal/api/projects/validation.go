package projects

import (
	"errors"
	"strings"
)

const maxTitleLength = 120

// ValidateCreate checks the fields every project must have.
func ValidateCreate(req CreateRequest) error {
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	if strings.TrimSpace(req.Description) == "" {
		return errors.New("Description is required")
	}
	return nil
}

// ValidateTitle checks a project title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("Title is required")
	}
	if len(title) > maxTitleLength {
		return errors.New("Title must be 120 characters or less")
	}
	return nil
}
