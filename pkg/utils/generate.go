package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(uuidStr))
}

// ==================== FILE NAME ====================

// MakeFileName builds a collision-resistant upload name:
// "Summer Dress.PNG" -> "summer-dress-1718000000000-1a2b3c4d.png".
func MakeFileName(original string, now time.Time) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	stem = strings.ToLower(strings.TrimSpace(stem))
	stem = strings.Join(strings.Fields(stem), "-")
	if stem == "" || stem == "." {
		stem = "image"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", stem, now.UnixMilli(), suffix, ext)
}
