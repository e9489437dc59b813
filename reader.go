package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// ArchiveEntry is one file record from the zip central directory.
type ArchiveEntry struct {
	Path  string
	Size  uint64
	CRC32 uint32
}

// readEntries lists the archive's file entries without extracting
// anything. Directory entries are not listed.
func readEntries(zipPath string, exclude []string) ([]ArchiveEntry, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, pipeErr(InvalidArchive, zipPath, err)
	}
	defer zr.Close()
	entries := make([]ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if ismatch(f.Name, exclude) {
			slog.Debug("exclude-match", "name", f.Name, "exclude", exclude)
			continue
		}
		entries = append(entries, ArchiveEntry{Path: f.Name, Size: f.UncompressedSize64, CRC32: f.CRC32})
	}
	return entries, nil
}

// extractArchive writes every entry under destDir, preserving the
// archive's directory structure. Returns cumulative bytes written,
// which is still meaningful on a partial extraction.
func extractArchive(zipPath, destDir string, exclude []string, progress bool) (int64, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, pipeErr(InvalidArchive, zipPath, err)
	}
	defer zr.Close()
	var bar *progressbar.ProgressBar
	if progress {
		var total int64
		for _, f := range zr.File {
			total += int64(f.UncompressedSize64)
		}
		bar = progressbar.DefaultBytes(total, filepath.Base(zipPath))
		defer bar.Close()
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, pipeErr(ExtractionError, destDir, err)
	}
	var written int64
	for _, f := range zr.File {
		if ismatch(f.Name, exclude) {
			slog.Debug("exclude-match", "name", f.Name, "exclude", exclude)
			continue
		}
		n, err := extractEntry(f, destDir, bar)
		written += n
		if err != nil {
			slog.Error("extract entry", "name", f.Name, "error", err, "written", written)
			return written, pipeErr(ExtractionError, f.Name, err)
		}
	}
	return written, nil
}

func extractEntry(f *zip.File, destDir string, bar *progressbar.ProgressBar) (int64, error) {
	target, err := safeJoin(destDir, f.Name)
	if err != nil {
		return 0, err
	}
	if f.FileInfo().IsDir() {
		return 0, os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}
	rd, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rd.Close()
	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	wr, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	var dst io.Writer = wr
	if bar != nil {
		dst = io.MultiWriter(wr, bar)
	}
	written, err := io.Copy(dst, rd)
	if cerr := wr.Close(); cerr != nil && err == nil {
		err = cerr
	}
	slog.Debug("extracted", "name", f.Name, "written", written)
	return written, err
}

// safeJoin rejects entry names that would escape destDir.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal entry path: %s", name)
	}
	return target, nil
}
