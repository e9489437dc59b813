package main

import (
	"archive/zip"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
)

type ZipList struct {
	Archive flags.Filename `short:"f" long:"archive" description:"archive file" required:"true"`
}

func (cmd *ZipList) Execute(args []string) (err error) {
	init_log()
	zipfile, err := zip.OpenReader(string(cmd.Archive))
	if err != nil {
		slog.Error("open error", "error", err)
		return err
	}
	defer zipfile.Close()
	var files, folders int
	var total uint64
	for _, i := range zipfile.File {
		if i.FileInfo().IsDir() {
			folders++
			fmt.Println("/", i.Name)
		} else if i.Method != zip.Deflate {
			files++
			total += i.UncompressedSize64
			fmt.Printf("! %s %d %d %08x\n", i.Name, i.CompressedSize64, i.UncompressedSize64, i.CRC32)
		} else {
			files++
			total += i.UncompressedSize64
			fmt.Printf("D %s %d %d %08x\n", i.Name, i.CompressedSize64, i.UncompressedSize64, i.CRC32)
		}
	}
	fmt.Println(files, "files,", folders, "folders,", humanize.Bytes(total))
	return nil
}
