package main

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateStringLength validates string length constraints
func ValidateStringLength(field, value string, minLen, maxLen int) error {
	length := utf8.RuneCountInString(value)
	if length < minLen {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", minLen),
		}
	}
	if maxLen > 0 && length > maxLen {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxLen),
		}
	}
	return nil
}

// ValidateRange validates that a number is within a range
func ValidateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		}
	}
	return nil
}

// ValidateEnum validates that a value is in a list of allowed values
func ValidateEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateProjectTitle checks the working title used for generated decks and
// export metadata. Empty is allowed (a placeholder is substituted later).
func ValidateProjectTitle(title string) error {
	if title == "" {
		return nil
	}
	return ValidateStringLength("projectTitle", title, 1, 120)
}

// ValidateSlideNumber checks a 1-based slide number against the deck size.
func ValidateSlideNumber(number, slideCount int) error {
	if slideCount <= 0 {
		return &ValidationError{Field: "slideNumber", Message: "the deck is empty"}
	}
	return ValidateRange("slideNumber", number, 1, slideCount)
}

// unsafeFileChars matches characters that are invalid in file names on at
// least one supported platform.
var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeFileName turns a deck title into a safe default export file name.
func SanitizeFileName(name string) string {
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if name == "" {
		return "deck"
	}
	if utf8.RuneCountInString(name) > 80 {
		runes := []rune(name)
		name = string(runes[:80])
	}
	return name
}

// ValidateFileExtension validates file extension against allowed list
func ValidateFileExtension(filename string, allowedExts []string) error {
	if filename == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}

	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return &ValidationError{Field: "filename", Message: "file must have an extension"}
	}

	ext := strings.ToLower(parts[len(parts)-1])
	for _, allowed := range allowedExts {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	return &ValidationError{
		Field:   "filename",
		Message: fmt.Sprintf("file extension must be one of: %s", strings.Join(allowedExts, ", ")),
	}
}
