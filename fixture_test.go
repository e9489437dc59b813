package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/foobaz/go-zopfli/zopfli"
	"gopkg.in/loremipsum.v1"
)

type fixtureEntry struct {
	name string
	data []byte
	dir  bool
}

func loremBytes(t *testing.T, size int) []byte {
	t.Helper()
	lorem := loremipsum.New()
	var res string
	for len(res) < size {
		res += lorem.Paragraph() + "\n"
	}
	return []byte(res)[:size]
}

// writeZip builds a zip file on disk from the given entries.
func writeZip(t *testing.T, path string, entries []fixtureEntry) string {
	t.Helper()
	return writeZipWith(t, path, entries, nil)
}

// writeZopfliZip builds the same zip through a zopfli Deflate
// compressor, so reconciliation can be checked against an archive not
// produced by the stdlib encoder.
func writeZopfliZip(t *testing.T, path string, entries []fixtureEntry) string {
	t.Helper()
	return writeZipWith(t, path, entries, func(wr *zip.Writer) {
		wr.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			opts := zopfli.DefaultOptions()
			return &deflateWriteCloser{opts: opts, output: out}, nil
		})
	})
}

func writeZipWith(t *testing.T, path string, entries []fixtureEntry, setup func(*zip.Writer)) string {
	t.Helper()
	fp, err := os.Create(path)
	if err != nil {
		t.Fatal("create", err)
	}
	wr := zip.NewWriter(fp)
	if setup != nil {
		setup(wr)
	}
	for _, e := range entries {
		if e.dir {
			if _, err := wr.Create(e.name + "/"); err != nil {
				t.Fatal("create dir entry", e.name, err)
			}
			continue
		}
		w, err := wr.Create(e.name)
		if err != nil {
			t.Fatal("create entry", e.name, err)
		}
		if written, err := w.Write(e.data); err != nil || written != len(e.data) {
			t.Fatal("write entry", e.name, err, written)
		}
	}
	if err := wr.Close(); err != nil {
		t.Fatal("close writer", err)
	}
	if err := fp.Close(); err != nil {
		t.Fatal("close file", err)
	}
	return path
}

type deflateWriteCloser struct {
	opts   zopfli.Options
	output io.Writer
}

func (d *deflateWriteCloser) Write(in []byte) (int, error) {
	err := zopfli.DeflateCompress(&d.opts, in, d.output)
	return len(in), err
}

func (d *deflateWriteCloser) Close() error {
	return nil
}

// scriptConsole stands in for the operator.
type scriptConsole struct {
	answers []bool
	asked   []string
	lines   []string
}

func (c *scriptConsole) Println(a ...any) {
	c.lines = append(c.lines, fmt.Sprintln(a...))
}

func (c *scriptConsole) Printf(format string, a ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, a...))
}

func (c *scriptConsole) Confirm(prompt string) (bool, error) {
	c.asked = append(c.asked, prompt)
	if len(c.answers) == 0 {
		return false, nil
	}
	ans := c.answers[0]
	c.answers = c.answers[1:]
	return ans, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scenarioEntries is the 3-entry walkthrough: a.txt 100 bytes,
// b.txt 0 bytes, dir/c.txt 50 bytes.
func scenarioEntries(t *testing.T) []fixtureEntry {
	t.Helper()
	return []fixtureEntry{
		{name: "a.txt", data: loremBytes(t, 100)},
		{name: "b.txt", data: []byte{}},
		{name: "dir/c.txt", data: loremBytes(t, 50)},
	}
}

func scenarioZip(t *testing.T, dir string) string {
	t.Helper()
	return writeZip(t, filepath.Join(dir, "scenario.zip"), scenarioEntries(t))
}
