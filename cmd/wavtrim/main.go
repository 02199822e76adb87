// This tool cuts a time window out of an audio file and stores it as
// trimmed_<name>.wav.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavedit"
)

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, wavedit.ErrInvalidRange) {
		fmt.Println("Please select a valid time range:", err)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavtrim", flag.ContinueOnError)

	start := flagSet.Float64("start", 0, "start of the kept window in seconds")
	end := flagSet.Float64("end", -1, "end of the kept window in seconds, defaults to the end of the file")
	outDir := flagSet.String("out", ".", "directory to write the trimmed file to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	src := flagSet.Arg(0)

	buf, err := wavedit.LoadFile(src)
	if err != nil {
		return err
	}

	window := wavedit.TimeRange{Start: *start, End: *end}
	if window.End < 0 {
		window.End = buf.Seconds()
	}

	trimmed, err := wavedit.Trim(buf, window)
	if err != nil {
		return err
	}

	dst := filepath.Join(*outDir, wavedit.TrimmedName(src))
	if err := wavedit.SaveFile(dst, trimmed); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: kept %s of %s (%d frames)\n", dst, window, buf.Duration(), trimmed.FrameCount())

	return nil
}
