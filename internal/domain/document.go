package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InitialDocumentVersion is assigned to new and duplicated documents.
const InitialDocumentVersion = "v1.0"

// Document is a versioned policy, procedure or evidence record.
type Document struct {
	ID         string
	Title      string
	Type       string
	Version    string
	UploadDate time.Time
}

// NextDocumentVersion bumps the minor component of a "vMAJOR.MINOR" label.
// Labels that do not parse restart at v1.1.
func NextDocumentVersion(current string) string {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(current), "v"), ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return "v1.1"
	}
	minor := 0
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil || minor < 0 {
			return "v1.1"
		}
	}
	return fmt.Sprintf("v%d.%d", major, minor+1)
}
