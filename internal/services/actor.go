package services

import (
	"errors"
	"io"
	"sort"
	"strings"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAdminRequired          = errors.New("admin access required")
	ErrValidation             = errors.New("validation failed")
)

// Actor is the caller a service acts for. The zero value is an anonymous visitor.
type Actor struct {
	UserID string
	Email  string
	Name   string
	Admin  bool
}

// Authenticated reports whether the actor is a signed-in user.
func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

func requireUser(a Actor) error {
	if !a.Authenticated() {
		return ErrAuthenticationRequired
	}
	return nil
}

func requireAdmin(a Actor) error {
	if !a.Authenticated() {
		return ErrAuthenticationRequired
	}
	if !a.Admin {
		return ErrAdminRequired
	}
	return nil
}

// FieldErrors maps input field names to user-facing messages. It matches ErrValidation
// under errors.Is.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, k := range fields {
		parts[i] = k + ": " + f[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// orNil returns nil when no field failed, so callers can return it directly.
func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// FileUpload is a file received from a client, ready to be stored.
type FileUpload struct {
	Name   string
	Reader io.Reader
}
