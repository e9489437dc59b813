package main

import (
	"sort"

	"github.com/dustin/go-humanize"
)

const checksumPreview = 5

// summaryHeaderLines is what displaySummary prints before the type
// table, counted against the max-lines cap.
const summaryHeaderLines = 5

// displaySummary prints the post-extraction report, capping the
// content-type table so the whole thing stays under maxLines.
func displaySummary(console Console, sum *AnalysisSummary, maxLines uint) {
	console.Println("\nExtracted Content Summary:")
	console.Printf("Total Files: %d\n", sum.TotalFiles)
	console.Printf("Total Folders: %d\n", sum.TotalFolders)
	console.Printf("Total Size: %s\n", humanize.Bytes(uint64(sum.TotalSize)))
	if sum.Largest.Path != "" {
		console.Printf("Largest File: %s (%s)\n", sum.Largest.Path, humanize.Bytes(uint64(sum.Largest.Size)))
	}
	if ratio := sum.CompressionRatio(); ratio > 0 {
		console.Printf("Compression Ratio: %.2fx (%s -> %s)\n",
			ratio, humanize.Bytes(uint64(sum.TotalSize)), humanize.Bytes(uint64(sum.ArchiveSize)))
	}
	displayTypes(console, sum.FileTypes, maxLines)
	console.Printf("\nChecksums: %d matched, %d mismatched\n", sum.Matched, sum.Mismatched)
	shown := 0
	for _, path := range sortedRecordPaths(sum.Checksums) {
		if shown >= checksumPreview {
			console.Printf("... and %d more\n", len(sum.Checksums)-shown)
			break
		}
		rec := sum.Checksums[path]
		switch {
		case rec.Matched():
			console.Printf("= %s %08x\n", path, *rec.Disk)
		case rec.Archive == nil:
			console.Printf("+ %s (not in archive)\n", path)
		case rec.Disk == nil:
			console.Printf("- %s (missing on disk)\n", path)
		default:
			console.Printf("! %s archive=%08x disk=%08x\n", path, *rec.Archive, *rec.Disk)
		}
		shown++
	}
}

func displayTypes(console Console, types map[string]int, maxLines uint) {
	type typeCount struct {
		name  string
		count int
	}
	rows := make([]typeCount, 0, len(types))
	for name, count := range types {
		rows = append(rows, typeCount{name: name, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	limit := len(rows)
	if int(maxLines) > summaryHeaderLines && limit > int(maxLines)-summaryHeaderLines {
		limit = int(maxLines) - summaryHeaderLines
		console.Printf("\nTop %d File Types:\n", limit)
	} else {
		console.Println("\nFile Types:")
	}
	for _, row := range rows[:limit] {
		console.Printf("%6d  %s\n", row.count, row.name)
	}
}
