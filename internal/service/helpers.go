package service

import (
	"strings"

	"switchyard.app/platform/internal/search"
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// pageBounds clamps API paging input to the store's int32 arguments.
func pageBounds(limit, offset int) (int32, int32) {
	return int32(search.ClampLimit(limit)), int32(max(offset, 0))
}

func ptrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
