// This tool converts a WAV or AIFF file into a 16-bit PCM wav file named after
// the source.
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

	if errors.Is(err, wavedit.ErrUnsupportedFormat) {
		fmt.Println("Can't convert this file:", err)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("towav", flag.ContinueOnError)

	outDir := flagSet.String("out", "", "directory to write to, defaults to the source directory")

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

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(src)
	}

	dst := filepath.Join(dir, wavedit.Stem(src)+".wav")
	if filepath.Clean(dst) == filepath.Clean(src) {
		dst = filepath.Join(dir, wavedit.Stem(src)+"_16bit.wav")
	}

	if err := wavedit.SaveFile(dst, buf); err != nil {
		return err
	}

	fmt.Fprintf(out, "File converted to %s (%s, %s)\n", dst, buf.Format(), buf.Duration())

	return nil
}
