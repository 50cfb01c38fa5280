package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// shortID returns n upper-case hex characters from a fresh UUID.
func shortID(n int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(raw) {
		n = len(raw)
	}
	return strings.ToUpper(raw[:n])
}

// notFound maps a missing row to a NOT_FOUND error for resource.
func notFound(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

func copyName(name string) string {
	return name + " (Copy)"
}
