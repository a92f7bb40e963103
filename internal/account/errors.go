package account

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidationFailed matches every *ValidationError via errors.Is.
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrProvisioningFailed = errors.New("provisioning failed")
	ErrBadCredentials     = errors.New("invalid credentials")
	ErrNotFound           = errors.New("account not found")
)

// ValidationError carries one message per offending field, keyed by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }
