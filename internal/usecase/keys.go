package usecase

import (
	"net/url"
	"strings"
)

const (
	sourceExt = ".txt"
	targetExt = ".pdf"
)

// DecodeKey undoes the form encoding S3 applies to keys in event
// notifications, where spaces arrive as '+'. Escapes that do not form valid
// UTF-8 decode to U+FFFD.
func DecodeKey(raw string) (string, error) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(decoded, "\uFFFD"), nil
}

// DestinationKey replaces the first ".txt" in key with ".pdf". A key without
// ".txt" is returned unchanged, so the destination can equal the source.
func DestinationKey(key string) string {
	return strings.Replace(key, sourceExt, targetExt, 1)
}

// SplitLines splits content on '\n'. Carriage returns are kept. Trailing empty
// lines are dropped, so a terminating newline does not add a paragraph and
// empty content has no lines; interior empty lines are kept.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
