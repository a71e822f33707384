package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomSlug returns a unique slug with the given prefix so tests can run
// against a shared database without colliding.
func RandomSlug(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
