// Package forms validates user input before it is sent to the backend.
package forms

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ytinsight/insight-client/internal/models"
)

// MinPasswordLength is the shortest password the backend accepts
const MinPasswordLength = 6

// FieldErrors maps a form field to the message shown next to it
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + f[field]
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		f.add(field, "email is required")
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@"):], ".") {
		f.add(field, "invalid email address")
	}
}

func (f FieldErrors) password(field, value string) {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		f.add(field, "password must be at least 6 characters")
	}
}

// Login checks the sign-in form
func Login(req models.LoginRequest) error {
	errs := FieldErrors{}
	errs.email("email", req.Email)
	if req.Password == "" {
		errs.add("password", "password is required")
	}
	return errs.Err()
}

// Register checks the sign-up form; confirm is the repeated password
func Register(req models.RegisterRequest, confirm string) error {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Username) == "" {
		errs.add("username", "username is required")
	}
	errs.email("email", req.Email)
	errs.password("password", req.Password)
	if req.Password != confirm {
		errs.add("confirmPassword", "passwords do not match")
	}
	return errs.Err()
}

// PasswordChange checks the change-password form
func PasswordChange(req models.UpdatePasswordRequest) error {
	errs := FieldErrors{}
	if req.CurrentPassword == "" {
		errs.add("currentPassword", "current password is required")
	}
	errs.password("newPassword", req.NewPassword)
	if req.NewPassword != req.ConfirmPassword {
		errs.add("confirmPassword", "passwords do not match")
	}
	return errs.Err()
}

// AnalyzeURL returns the trimmed URL or a field error when it is blank
func AnalyzeURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", FieldErrors{"url": "please enter a channel or video URL"}
	}
	return url, nil
}
