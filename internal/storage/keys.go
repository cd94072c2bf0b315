package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName replaces every character outside [A-Za-z0-9._-] with an underscore.
// Characters are replaced, not stripped, so keys keep the shape of objects already
// uploaded by the existing site and a name made only of such characters is never empty.
func SanitizeFileName(name string) string {
	return unsafeFileNameChars.ReplaceAllString(name, "_")
}

// DocumentKey builds the team-documents key {userID}_{unixMillis}_{sanitizedName}.
func DocumentKey(userID string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s_%d_%s", userID, at.UnixMilli(), SanitizeFileName(fileName))
}

// ResourceKey builds the resources key {sectionKey}_{unixMillis}_{sanitizedName}.
func ResourceKey(sectionKey string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s_%d_%s", sectionKey, at.UnixMilli(), SanitizeFileName(fileName))
}

// EventImageKey builds event_{unixMillis}.{ext}; ext defaults to jpg.
func EventImageKey(at time.Time, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	ext = SanitizeFileName(ext)
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("event_%d.%s", at.UnixMilli(), ext)
}
