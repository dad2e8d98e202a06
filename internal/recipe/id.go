package recipe

import (
	"strings"

	"github.com/google/uuid"
)

// newID creates a short opaque recipe id like "r_3f9a0c1be2".
func newID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "r_" + hex[:10]
}
