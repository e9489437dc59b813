package main

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

func ismatch(name string, patterns []string) bool {
	for _, pat := range patterns {
		if matched, _ := filepath.Match(pat, name); matched {
			slog.Debug("match", "name", name, "pattern", pat)
			return true
		}
	}
	return false
}

// sniffType classifies content by its leading bytes, dropping any
// charset parameter from the detected type.
func sniffType(head []byte) string {
	content_type := http.DetectContentType(head)
	sname := strings.SplitN(content_type, ";", 2)
	return strings.TrimSpace(sname[0])
}
