package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
)

const stashLogName = ".stash_log.json"

// StashCmd moves a file into the stash directory and records the move
// in a JSON log so it can be undone later.
type StashCmd struct {
	StashDir flags.Filename `short:"s" long:"stash-dir" description:"directory to stash files" env:"UNZIPPY_STASH_DIR"`
	DryRun   bool           `short:"d" long:"dry-run" description:"preview without moving"`
	Force    bool           `short:"F" long:"force" description:"skip confirmation and overwrite on collision"`
	Undo     bool           `short:"u" long:"undo" description:"restore a stashed file"`
	Restore  flags.Filename `short:"r" long:"restore" description:"directory to restore into (with --undo)"`

	console Console
}

type stashEntry struct {
	Original         string `json:"original"`
	Stashed          string `json:"stashed"`
	OriginalLocation string `json:"original_location"`
}

func (cmd *StashCmd) Execute(args []string) error {
	init_log()
	if cmd.console == nil {
		cmd.console = NewTerminalConsole()
	}
	if len(args) != 1 {
		return fmt.Errorf("exactly one file argument required")
	}
	dir := string(cmd.StashDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".stash")
	}
	if cmd.Undo {
		if cmd.Restore == "" {
			return fmt.Errorf("--restore is required with --undo")
		}
		return cmd.undo(dir, args[0], string(cmd.Restore))
	}
	return cmd.stash(dir, args[0])
}

func (cmd *StashCmd) stash(stashDir, path string) error {
	st, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("the file %s does not exist", path)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("not a stashable file: %s", path)
	}
	dest := filepath.Join(stashDir, filepath.Base(path))
	if cmd.DryRun {
		cmd.console.Printf("Dry run: would move %s to %s\n", path, dest)
		if _, err := os.Lstat(dest); err == nil {
			cmd.console.Println("A file with that name already exists in the stash.")
		}
		cmd.console.Printf("Size: %s, Permissions: %s\n", humanize.Bytes(uint64(st.Size())), st.Mode().Perm())
		return nil
	}
	if !cmd.Force {
		ok, err := cmd.console.Confirm(fmt.Sprintf("Are you sure you want to move %s to %s? (y/n): ", path, stashDir))
		if err != nil || !ok {
			cmd.console.Println("Move operation cancelled.")
			return nil
		}
	}
	if err := os.MkdirAll(stashDir, 0o755); err != nil {
		return err
	}
	if _, err := os.Lstat(dest); err == nil && !cmd.Force {
		dest = timestamped(dest)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := moveFile(path, dest); err != nil {
		slog.Error("move", "from", path, "to", dest, "error", err)
		return err
	}
	if err := cmd.logStash(stashDir, abs, dest); err != nil {
		slog.Error("stash log update", "error", err)
	}
	cmd.console.Printf("Moved: %s -> %s\n", path, dest)
	cmd.console.Printf("Size: %s\n", humanize.Bytes(uint64(st.Size())))
	cmd.console.Printf("To undo: unzippy stash -u %s -r %s\n", filepath.Base(dest), filepath.Dir(abs))
	return nil
}

func (cmd *StashCmd) logStash(stashDir, original, stashed string) error {
	log, err := loadStashLog(stashDir)
	if err != nil {
		return err
	}
	log[filepath.Base(stashed)] = stashEntry{
		Original:         original,
		Stashed:          stashed,
		OriginalLocation: filepath.Dir(original),
	}
	return saveStashLog(stashDir, log)
}

func (cmd *StashCmd) undo(stashDir, name, restoreDir string) error {
	log, err := loadStashLog(stashDir)
	if err != nil {
		return err
	}
	entry, ok := log[name]
	if !ok {
		return fmt.Errorf("no stash record found for %s", name)
	}
	if _, err := os.Lstat(entry.Stashed); err != nil {
		return fmt.Errorf("stashed file %s not found", entry.Stashed)
	}
	dest := filepath.Join(restoreDir, name)
	if _, err := os.Lstat(dest); err == nil {
		dest = timestamped(dest)
	}
	if err := moveFile(entry.Stashed, dest); err != nil {
		slog.Error("restore", "from", entry.Stashed, "to", dest, "error", err)
		return err
	}
	delete(log, name)
	if err := saveStashLog(stashDir, log); err != nil {
		return err
	}
	cmd.console.Printf("Restored %s to %s\n", name, dest)
	return nil
}

func loadStashLog(stashDir string) (map[string]stashEntry, error) {
	data, err := os.ReadFile(filepath.Join(stashDir, stashLogName))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]stashEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	log := map[string]stashEntry{}
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, err
	}
	return log, nil
}

func saveStashLog(stashDir string, log map[string]stashEntry) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(stashDir, stashLogName), data, 0o644)
}

// timestamped keeps both files on a name collision.
func timestamped(path string) string {
	stamp := time.Now().Format("20060102_150405")
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + stamp + ext
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}
	st, err := os.Stat(from)
	if err != nil {
		return err
	}
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(from)
}
