package api

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	// RFC 5321 upper bound
	if len(email) > 254 {
		return fmt.Errorf("email address is too long (maximum 254 characters)")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password is too long (maximum 128 characters)")
	}
	return nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmed) < 2 {
		return fmt.Errorf("name must be at least 2 characters long")
	}
	if len(name) > 100 {
		return fmt.Errorf("name is too long (maximum 100 characters)")
	}
	return nil
}

func validatePreferences(preferences []string) error {
	if len(preferences) > 20 {
		return fmt.Errorf("maximum 20 preferences allowed")
	}
	for i, p := range preferences {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("preferences[%d] cannot be empty", i)
		}
		if len(p) > 50 {
			return fmt.Errorf("preferences[%d] is too long (maximum 50 characters)", i)
		}
	}
	return nil
}
