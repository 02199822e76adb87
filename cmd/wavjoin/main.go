// This tool concatenates audio files, in the order they are passed, into
// joined_audio.wav.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/cwbudde/wavedit"
)

var errMissingPaths = errors.New("at least two input files are required")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	var mismatch *wavedit.FormatMismatchError
	if errors.As(err, &mismatch) {
		fmt.Printf("File #%d is %s but the first file is %s\n", mismatch.Index+1, mismatch.Actual, mismatch.Expected)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavjoin", flag.ContinueOnError)

	outDir := flagSet.String("out", ".", "directory to write joined_audio.wav to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	paths := flagSet.Args()
	if len(paths) < 2 {
		return errMissingPaths
	}

	bufs, err := loadAll(paths)
	if err != nil {
		return err
	}

	joined, err := wavedit.Join(bufs...)
	if err != nil {
		return err
	}

	dst := filepath.Join(*outDir, wavedit.JoinedName)
	if err := wavedit.SaveFile(dst, joined); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: joined %d files, %s\n", dst, len(bufs), joined.Duration())

	return nil
}

// loadAll decodes every path concurrently and returns the buffers in the
// order of paths. The first failing path, in argument order, is reported.
func loadAll(paths []string) ([]*wavedit.Buffer, error) {
	bufs := make([]*wavedit.Buffer, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)

		go func() {
			defer wg.Done()

			bufs[i], errs[i] = wavedit.LoadFile(path)
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return bufs, nil
}
