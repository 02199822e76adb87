package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavedit"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")
	numChans := flagSet.Int("channels", 1, "number of channels, each gets the same tone")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	buf, err := sine(*sampleRate, *numChans, *frequency, *length)
	if err != nil {
		return err
	}

	return wavedit.SaveFile(*output, buf)
}

func sine(sampleRate, numChans int, frequency, length float64) (*wavedit.Buffer, error) {
	numSamples := max(int(float64(sampleRate)*length), 0)

	samples := make([]float32, numSamples)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) / float64(sampleRate) * frequency * 2 * math.Pi))
	}

	channels := make([][]float32, max(numChans, 0))
	for c := range channels {
		channels[c] = samples
	}

	// NewBuffer copies, sharing samples across channels is fine here.
	return wavedit.NewBuffer(sampleRate, channels...)
}
