package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
)

func TestStashAndUndo(t *testing.T) {
	work := t.TempDir()
	stashDir := t.TempDir()
	fname := filepath.Join(work, "note.txt")
	if err := os.WriteFile(fname, []byte("keep me\n"), 0o644); err != nil {
		t.Fatal("write", err)
	}
	cmd := StashCmd{StashDir: flags.Filename(stashDir), Force: true, console: &scriptConsole{}}
	if err := cmd.Execute([]string{fname}); err != nil {
		t.Fatal("stash", err)
	}
	if _, err := os.Lstat(fname); !os.IsNotExist(err) {
		t.Error("original must be moved", err)
	}
	if _, err := os.Lstat(filepath.Join(stashDir, "note.txt")); err != nil {
		t.Error("stashed copy missing", err)
	}
	log, err := loadStashLog(stashDir)
	if err != nil {
		t.Fatal("log", err)
	}
	if entry, ok := log["note.txt"]; !ok || entry.OriginalLocation != work {
		t.Error("log entry", log)
	}

	undo := StashCmd{StashDir: flags.Filename(stashDir), Undo: true, Restore: flags.Filename(work), console: &scriptConsole{}}
	if err := undo.Execute([]string{"note.txt"}); err != nil {
		t.Fatal("undo", err)
	}
	data, err := os.ReadFile(fname)
	if err != nil || string(data) != "keep me\n" {
		t.Error("restore", err, string(data))
	}
	log, err = loadStashLog(stashDir)
	if err != nil {
		t.Fatal("log reload", err)
	}
	if len(log) != 0 {
		t.Error("log entry must be cleared", log)
	}
}

func TestStashDryRun(t *testing.T) {
	work := t.TempDir()
	stashDir := t.TempDir()
	fname := filepath.Join(work, "note.txt")
	if err := os.WriteFile(fname, []byte("x"), 0o644); err != nil {
		t.Fatal("write", err)
	}
	console := &scriptConsole{}
	cmd := StashCmd{StashDir: flags.Filename(stashDir), DryRun: true, console: console}
	if err := cmd.Execute([]string{fname}); err != nil {
		t.Fatal("dry run", err)
	}
	if _, err := os.Lstat(fname); err != nil {
		t.Error("dry run must not move", err)
	}
	if len(console.asked) != 0 {
		t.Error("dry run must not prompt", console.asked)
	}
}

func TestStashCancelled(t *testing.T) {
	work := t.TempDir()
	stashDir := t.TempDir()
	fname := filepath.Join(work, "note.txt")
	if err := os.WriteFile(fname, []byte("x"), 0o644); err != nil {
		t.Fatal("write", err)
	}
	console := &scriptConsole{answers: []bool{false}}
	cmd := StashCmd{StashDir: flags.Filename(stashDir), console: console}
	if err := cmd.Execute([]string{fname}); err != nil {
		t.Fatal("stash", err)
	}
	if _, err := os.Lstat(fname); err != nil {
		t.Error("declined move must keep the file", err)
	}
}

func TestStashCollision(t *testing.T) {
	work := t.TempDir()
	stashDir := t.TempDir()
	fname := filepath.Join(work, "note.txt")
	if err := os.WriteFile(fname, []byte("new"), 0o644); err != nil {
		t.Fatal("write", err)
	}
	if err := os.WriteFile(filepath.Join(stashDir, "note.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal("seed stash", err)
	}
	console := &scriptConsole{answers: []bool{true}}
	cmd := StashCmd{StashDir: flags.Filename(stashDir), console: console}
	if err := cmd.Execute([]string{fname}); err != nil {
		t.Fatal("stash", err)
	}
	old, err := os.ReadFile(filepath.Join(stashDir, "note.txt"))
	if err != nil || string(old) != "old" {
		t.Error("existing stash file must survive", err, string(old))
	}
	matches, err := filepath.Glob(filepath.Join(stashDir, "note_*.txt"))
	if err != nil || len(matches) != 1 {
		t.Error("timestamped copy expected", matches, err)
	}
}

func TestStashUndoUnknown(t *testing.T) {
	stashDir := t.TempDir()
	cmd := StashCmd{StashDir: flags.Filename(stashDir), Undo: true, Restore: flags.Filename(t.TempDir()), console: &scriptConsole{}}
	if err := cmd.Execute([]string{"ghost.txt"}); err == nil {
		t.Error("unknown stash name must fail")
	}
}

func TestMoveFile(t *testing.T) {
	tmp := t.TempDir()
	from := filepath.Join(tmp, "a")
	to := filepath.Join(tmp, "b")
	if err := os.WriteFile(from, []byte("payload"), 0o600); err != nil {
		t.Fatal("write", err)
	}
	if err := moveFile(from, to); err != nil {
		t.Fatal("move", err)
	}
	if _, err := os.Lstat(from); !os.IsNotExist(err) {
		t.Error("source must be gone", err)
	}
	data, err := os.ReadFile(to)
	if err != nil || string(data) != "payload" {
		t.Error("dest content", err, string(data))
	}
}
