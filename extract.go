package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
)

// testDirSuffix keeps test-mode output away from real extraction
// targets so repeated test runs never collide with production output.
const testDirSuffix = ".unzippy-test"

type ExtractCmd struct {
	Target   flags.Filename `short:"t" long:"target" description:"destination root for extraction" default:"."`
	TestMode bool           `long:"test" description:"extract to an isolated directory and only simulate deletion"`
	Exclude  []string       `short:"x" long:"exclude" description:"entry name patterns to skip"`
	MaxLines uint           `short:"m" long:"max-lines" description:"maximum summary lines to display" default:"40"`
	Progress bool           `long:"progress" description:"show progress bar"`

	console Console
}

func (cmd *ExtractCmd) Execute(args []string) error {
	init_log()
	if cmd.console == nil {
		cmd.console = NewTerminalConsole()
	}
	mode := Production
	if cmd.TestMode {
		mode = Test
	}
	archives, err := findArchives(args)
	if err != nil {
		slog.Error("archive discovery", "error", err)
		return err
	}
	if len(archives) == 0 {
		cmd.console.Println("No zip files found to process.")
		return nil
	}
	for _, zipPath := range archives {
		_, err := cmd.processArchive(zipPath, mode)
		if err != nil {
			// archive-level failures never abort the run
			var perr *PipelineError
			if errors.As(err, &perr) {
				slog.Error("archive skipped", "archive", zipPath, "kind", string(perr.Kind), "error", perr.Err)
				cmd.console.Printf("Error: %v\n", perr)
				continue
			}
			return err
		}
	}
	cmd.console.Println("\nAll zip files processed.")
	return nil
}

// findArchives resolves explicit arguments, or discovers *.zip in the
// working directory when none are given.
func findArchives(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return filepath.Glob("*.zip")
}

// processArchive runs the whole pipeline for one archive, strictly
// top to bottom: extract, analyze, reconcile, evaluate, then the
// deletion gate. Nothing is shared across archives.
func (cmd *ExtractCmd) processArchive(zipPath string, mode Mode) (*AnalysisSummary, error) {
	logger, closeLog := openArchiveLog(zipPath)
	defer closeLog()
	logger.Info("starting to process", "archive", zipPath)
	cmd.console.Printf("\nProcessing: %s\n", zipPath)

	entries, err := readEntries(zipPath, cmd.Exclude)
	if err != nil {
		logger.Error("invalid archive", "error", err)
		return nil, err
	}

	destDir := cmd.destinationFor(zipPath, mode)
	indicators := SuccessIndicators{NoErrors: true}
	written, err := extractArchive(zipPath, destDir, cmd.Exclude, cmd.Progress)
	if err != nil {
		// a partial extraction is still analyzed so the report can
		// say why success failed
		indicators.NoErrors = false
		logger.Error("extraction failed", "error", err, "written", written)
		cmd.console.Printf("Error extracting %s: %v\n", zipPath, err)
	} else {
		logger.Info("extraction complete", "written", written, "dest", destDir)
	}

	files, folders, err := analyzeTree(destDir)
	if err != nil {
		indicators.NoErrors = false
		logger.Error("analysis failed", "error", err)
		cmd.console.Printf("Error analyzing %s: %v\n", destDir, err)
	}
	var archiveSize int64
	if st, err := os.Stat(zipPath); err == nil {
		archiveSize = st.Size()
	}
	sum := summarize(files, folders, archiveSize)
	sum.Checksums = reconcile(entries, files)
	sum.Matched, sum.Mismatched = countMatches(sum.Checksums)
	indicators.FilesExtracted = sum.TotalFiles > 0
	sum.Indicators = indicators

	displaySummary(cmd.console, sum, cmd.MaxLines)
	logger.Info("summary",
		"files", sum.TotalFiles, "folders", sum.TotalFolders, "size", sum.TotalSize,
		"matched", sum.Matched, "mismatched", sum.Mismatched,
		"files_extracted", indicators.FilesExtracted, "no_errors", indicators.NoErrors)

	if err := resolveDeletion(cmd.console, logger, zipPath, sum, mode); err != nil {
		return sum, err
	}
	logger.Info("done", "archive", zipPath)
	return sum, nil
}

func (cmd *ExtractCmd) destinationFor(zipPath string, mode Mode) string {
	base := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	if mode == Test {
		return filepath.Join(string(cmd.Target), base+testDirSuffix)
	}
	return filepath.Join(string(cmd.Target), base)
}

// openArchiveLog opens the per-archive log file next to the archive,
// named after its base name. Falls back to a discard logger so a bad
// log path never blocks the pipeline.
func openArchiveLog(zipPath string) (*slog.Logger, func()) {
	logPath := strings.TrimSuffix(zipPath, filepath.Ext(zipPath)) + ".log"
	fp, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("log file unavailable", "path", logPath, "error", err)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewTextHandler(fp, nil))
	return logger, func() {
		if err := fp.Close(); err != nil {
			slog.Error("close log", "path", logPath, "error", err)
		}
	}
}
