package main

import (
	"errors"
	"log/slog"
	"os"
)

type Mode int

const (
	Production Mode = iota
	Test
)

// SuccessIndicators gate the destructive follow-up.
type SuccessIndicators struct {
	FilesExtracted bool
	NoErrors       bool
}

func (s SuccessIndicators) OK() bool {
	return s.FilesExtracted && s.NoErrors
}

// resolveDeletion is the single point where the two modes diverge on
// the destructive action. The extracted output is never deleted here,
// only the source archive, and only in Production after an explicit
// "y".
func resolveDeletion(console Console, logger *slog.Logger, zipPath string, sum *AnalysisSummary, mode Mode) error {
	success := sum.Indicators.OK() && sum.Mismatched == 0
	if mode == Test {
		if success {
			console.Printf("Test mode: would have offered to delete %s (extracted output kept)\n", zipPath)
		} else {
			console.Println("Test mode: deletion would not be offered:")
			reportFailure(console, sum)
		}
		logger.Info("test mode: no deletion performed", "archive", zipPath, "success", success)
		return nil
	}
	if !success {
		reportFailure(console, sum)
		logger.Info("deletion not offered", "archive", zipPath)
		return nil
	}
	ok, err := console.Confirm("Zip file successfully extracted. Delete the original zip file? (y/n): ")
	if err != nil {
		var perr *PipelineError
		if errors.As(err, &perr) && perr.Kind == OperatorCancelled {
			console.Println("Cancelled; archive left in place.")
			logger.Warn("confirmation interrupted", "archive", zipPath)
			return nil
		}
		return err
	}
	if !ok {
		console.Printf("Keeping %s\n", zipPath)
		logger.Info("deletion declined", "archive", zipPath)
		return nil
	}
	deleteArchive(console, logger, zipPath)
	return nil
}

// deleteArchive re-checks the target right before removal. A failed
// check logs and skips instead of failing the run.
func deleteArchive(console Console, logger *slog.Logger, zipPath string) {
	st, err := os.Lstat(zipPath)
	if err != nil {
		slog.Error("pre-delete stat", "archive", zipPath, "error", err)
		logger.Error("pre-delete stat", "error", err)
		return
	}
	if !st.Mode().IsRegular() {
		slog.Error("not a regular file, skipping delete", "archive", zipPath, "mode", st.Mode().String())
		logger.Error("not a regular file, skipping delete", "mode", st.Mode().String())
		return
	}
	if err := os.Remove(zipPath); err != nil {
		slog.Error("delete", "archive", zipPath, "error", err)
		logger.Error("delete failed", "error", err)
		return
	}
	console.Printf("Deleted: %s\n", zipPath)
	logger.Info("deleted original archive", "archive", zipPath)
}

func reportFailure(console Console, sum *AnalysisSummary) {
	if !sum.Indicators.FilesExtracted {
		console.Println("- no files were extracted")
	}
	if !sum.Indicators.NoErrors {
		console.Println("- errors occurred during extraction or analysis")
	}
	if sum.Mismatched > 0 {
		console.Printf("- %d checksum mismatch(es)\n", sum.Mismatched)
	}
}
