// This tool prints the format of an audio file and its amplitude envelope.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/wavedit"
)

const (
	missingPathMessage = "You must pass the path of the file to summarize"
	barWidth           = 60
)

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("waveform", flag.ContinueOnError)

	buckets := flagSet.Int("buckets", wavedit.DefaultBuckets, "number of waveform buckets")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	buf, err := wavedit.LoadFile(flagSet.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Format: %s\n", buf.Format())
	fmt.Fprintf(out, "Frames: %d\n", buf.FrameCount())
	fmt.Fprintf(out, "Duration: %s\n", buf.Duration())

	wave, err := wavedit.Summarize(buf, *buckets)
	if err != nil {
		return err
	}

	for i, v := range wave {
		fmt.Fprintf(out, "%4d %s\n", i, strings.Repeat("#", int(v*barWidth+0.5)))
	}

	return nil
}
