package main

import "sort"

// ChecksumRecord holds the two independently computed CRC-32 values
// for one relative path. A nil side means that source had no record,
// which must stay distinguishable from a genuine checksum of zero.
type ChecksumRecord struct {
	Archive *uint32
	Disk    *uint32
}

func (r *ChecksumRecord) Matched() bool {
	return r.Archive != nil && r.Disk != nil && *r.Archive == *r.Disk
}

// reconcile unions the archive listing and the extracted files into
// per-path records. One-sided records are anomalies and count as
// mismatches; nothing is repaired here, only classified.
func reconcile(entries []ArchiveEntry, files []ExtractedFile) map[string]*ChecksumRecord {
	records := make(map[string]*ChecksumRecord, len(entries))
	for _, e := range entries {
		crc := e.CRC32
		records[e.Path] = &ChecksumRecord{Archive: &crc}
	}
	for _, f := range files {
		crc := f.CRC32
		if rec, ok := records[f.Path]; ok {
			rec.Disk = &crc
		} else {
			records[f.Path] = &ChecksumRecord{Disk: &crc}
		}
	}
	return records
}

func countMatches(records map[string]*ChecksumRecord) (matched, mismatched int) {
	for _, rec := range records {
		if rec.Matched() {
			matched++
		} else {
			mismatched++
		}
	}
	return
}

func sortedRecordPaths(records map[string]*ChecksumRecord) []string {
	paths := make([]string, 0, len(records))
	for path := range records {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
