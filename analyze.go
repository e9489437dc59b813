package main

import (
	"hash/crc32"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const sniffLen = 512

const checksumChunk = 64 * 1024

// ExtractedFile is one regular file found under the extraction root.
// Path is slash-separated and relative to the root, so it lines up
// with zip entry names.
type ExtractedFile struct {
	Path        string
	Size        int64
	ContentType string
	CRC32       uint32
}

type LargestFile struct {
	Path string
	Size int64
}

// AnalysisSummary aggregates one archive's extraction. Recomputed
// fresh per archive, never persisted.
type AnalysisSummary struct {
	TotalFiles   int
	TotalFolders int
	TotalSize    int64
	Largest      LargestFile
	FileTypes    map[string]int
	ArchiveSize  int64
	Checksums    map[string]*ChecksumRecord
	Matched      int
	Mismatched   int
	Indicators   SuccessIndicators
}

// CompressionRatio is informational only and feeds no decision.
func (s *AnalysisSummary) CompressionRatio() float64 {
	if s.TotalSize == 0 {
		return 0
	}
	return float64(s.ArchiveSize) / float64(s.TotalSize)
}

// analyzeTree walks root and produces one ExtractedFile per regular
// file, in traversal order, plus the count of directories below root.
func analyzeTree(root string) ([]ExtractedFile, int, error) {
	files := make([]ExtractedFile, 0)
	folders := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Error("walk", "path", path, "error", err)
			return err
		}
		if d.IsDir() {
			if path != root {
				folders++
			}
			return nil
		}
		if !d.Type().IsRegular() {
			slog.Debug("skip irregular", "path", path)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ef, err := analyzeFile(path)
		if err != nil {
			slog.Error("analyze", "path", path, "error", err)
			return err
		}
		ef.Path = filepath.ToSlash(rel)
		files = append(files, ef)
		return nil
	})
	return files, folders, err
}

// analyzeFile stats, sniffs and checksums one file in a single open.
// The checksum is the same regardless of the read chunk size.
func analyzeFile(path string) (ExtractedFile, error) {
	var ef ExtractedFile
	fp, err := os.Open(path)
	if err != nil {
		return ef, err
	}
	defer fp.Close()
	st, err := fp.Stat()
	if err != nil {
		return ef, err
	}
	ef.Size = st.Size()
	head := make([]byte, sniffLen)
	n, err := fp.Read(head)
	if err != nil && err != io.EOF {
		return ef, err
	}
	ef.ContentType = sniffType(head[:n])
	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		return ef, err
	}
	sum := crc32.NewIEEE()
	buf := make([]byte, checksumChunk)
	if _, err := io.CopyBuffer(sum, fp, buf); err != nil {
		return ef, err
	}
	ef.CRC32 = sum.Sum32()
	return ef, nil
}

// summarize folds the analyzer output into aggregates in one pass.
// Largest uses strict > so the first file at the maximum size wins.
func summarize(files []ExtractedFile, folders int, archiveSize int64) *AnalysisSummary {
	sum := &AnalysisSummary{
		TotalFiles:   len(files),
		TotalFolders: folders,
		FileTypes:    make(map[string]int),
		ArchiveSize:  archiveSize,
	}
	for _, f := range files {
		sum.TotalSize += f.Size
		sum.FileTypes[f.ContentType]++
		if f.Size > sum.Largest.Size {
			sum.Largest = LargestFile{Path: f.Path, Size: f.Size}
		}
	}
	return sum
}
