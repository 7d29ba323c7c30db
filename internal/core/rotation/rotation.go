// Package rotation contains the pure rules for archiving tracked files.
// Nothing here touches the filesystem; existence checks are passed in by the caller.
package rotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxVersion is the highest archive version probed for a single base name and day.
const MaxVersion = 99

// ErrArchiveExhausted is returned when every version slot for a day is taken.
var ErrArchiveExhausted = errors.New("archive versions exhausted")

// ShouldRotate reports whether a file of lines length exceeds ceiling.
// A file sitting exactly at the ceiling is kept.
func ShouldRotate(lines, ceiling int) bool {
	return lines > ceiling
}

// CountLines counts newline-separated segments in content.
// A trailing newline yields a final empty segment, and empty content counts as one line.
// JSON content is re-indented with two spaces first so the count reflects the
// persisted layout; content that is not valid JSON is counted as-is.
func CountLines(content []byte, isJSON bool) int {
	if isJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(content), "", "  "); err == nil {
			content = buf.Bytes()
		}
	}
	return strings.Count(string(content), "\n") + 1
}

// DateStamp formats t as YYYYMMDD in UTC.
func DateStamp(t time.Time) string {
	return t.UTC().Format("20060102")
}

// SplitBase splits a tracked file name into its stem and archive extension.
// Only .json keeps its own extension; everything else archives as .md.
func SplitBase(baseName string) (stem, ext string) {
	switch {
	case strings.HasSuffix(baseName, ".json"):
		return strings.TrimSuffix(baseName, ".json"), ".json"
	case strings.HasSuffix(baseName, ".md"):
		return strings.TrimSuffix(baseName, ".md"), ".md"
	default:
		return baseName, ".md"
	}
}

// ArchiveName builds {stem}-{date}-{NN}{ext}.
func ArchiveName(baseName, date string, version int) string {
	stem, ext := SplitBase(baseName)
	return fmt.Sprintf("%s-%s-%02d%s", stem, date, version, ext)
}

// NextArchiveName returns the first free archive name for baseName on date.
// exists reports whether a candidate name is already present in the archive directory.
func NextArchiveName(baseName, date string, exists func(name string) bool) (string, error) {
	for version := 1; version <= MaxVersion; version++ {
		name := ArchiveName(baseName, date, version)
		if !exists(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s on %s", ErrArchiveExhausted, baseName, date)
}
