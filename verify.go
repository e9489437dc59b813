package main

import (
	"fmt"
	"log/slog"

	"github.com/jessevdk/go-flags"
)

// VerifyCmd reconciles an already-extracted directory against the
// archive's stored checksums. No extraction, no deletion.
type VerifyCmd struct {
	Archive flags.Filename `short:"f" long:"archive" description:"archive file" required:"true"`
	Dir     flags.Filename `short:"d" long:"dir" description:"extracted directory to verify" required:"true"`
	Exclude []string       `short:"x" long:"exclude" description:"entry name patterns to skip"`
}

func (cmd *VerifyCmd) Execute(args []string) error {
	init_log()
	entries, err := readEntries(string(cmd.Archive), cmd.Exclude)
	if err != nil {
		slog.Error("open error", "error", err)
		return err
	}
	files, _, err := analyzeTree(string(cmd.Dir))
	if err != nil {
		slog.Error("walk error", "dir", cmd.Dir, "error", err)
		return err
	}
	records := reconcile(entries, files)
	for _, path := range sortedRecordPaths(records) {
		rec := records[path]
		switch {
		case rec.Matched():
			fmt.Printf("= %s %08x\n", path, *rec.Disk)
		case rec.Archive == nil:
			fmt.Printf("+ %s (not in archive)\n", path)
		case rec.Disk == nil:
			fmt.Printf("- %s (missing on disk)\n", path)
		default:
			fmt.Printf("! %s archive=%08x disk=%08x\n", path, *rec.Archive, *rec.Disk)
		}
	}
	matched, mismatched := countMatches(records)
	fmt.Println(matched, "matched,", mismatched, "mismatched")
	if mismatched > 0 {
		return fmt.Errorf("%d checksum mismatch(es)", mismatched)
	}
	return nil
}
