package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FileExtension returns the lowercase extension of a filename without the
// leading dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// GenerateSafeFilename strips unsafe characters and appends a timestamp so
// archived object names never collide.
func GenerateSafeFilename(original string) string {
	ext := filepath.Ext(original)
	nameWithoutExt := strings.TrimSuffix(filepath.Base(original), ext)

	safeName := unsafeChars.ReplaceAllString(nameWithoutExt, "_")
	timestamp := time.Now().Format("20060102_150405")

	return fmt.Sprintf("%s_%s%s", safeName, timestamp, ext)
}
