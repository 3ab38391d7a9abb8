// Command fourier-wav smooths or differentiates WAV audio with a truncated
// Fourier series fitted block by block.
//
// Usage:
//
//	fourier-wav input.wav output.wav
//	fourier-wav -threshold 0.05 input.wav denoised.wav      # Drop weak harmonics
//	fourier-wav -order 200 -block 4096 input.wav lowpass.wav # Keep 199 harmonics per block
//	fourier-wav -derivative 1 input.wav slope.wav            # First derivative, normalized
//	fourier-wav -config fourier.yaml input.wav output.wav    # Settings from YAML
//
// Flags set on the command line override values from the config file.
// Channels are fitted concurrently unless -parallel=false.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	fourierseries "github.com/jbhersch/fast-fourier-series"
	"github.com/jbhersch/fast-fourier-series/internal/config"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// WAV audio format tag for integer PCM
	pcmFormat = 1

	// Progress reporting
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI
	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	defaults := config.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file (flags override its values)")
	pad := flag.Int("pad", defaults.Fit.Pad, "Synthetic samples appended to each block")
	threshold := flag.Float64("threshold", defaults.Fit.Threshold, "Relative harmonic magnitude cutoff in (0, 1); 0 disables")
	padding := flag.String("padding", defaults.Fit.Padding, "Padding formula: neville, blend")
	backend := flag.String("backend", defaults.Fit.Backend, "FFT backend: gonum, go-dsp")
	order := flag.Int("order", defaults.Evaluate.Order, "Number of series terms including DC; 0 keeps all")
	derivative := flag.Int("derivative", defaults.Evaluate.Derivative, "0 = smoothed signal, 1 or 2 = derivative")
	block := flag.Int("block", defaults.Processing.BlockSize, "Frames fitted per model")
	parallel := flag.Bool("parallel", defaults.Processing.Parallel, "Fit channels concurrently")
	verbose := flag.Bool("v", defaults.Processing.Verbose, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -threshold 0.05 noisy.wav clean.wav  # Spectral denoise\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -derivative 1 in.wav slope.wav       # Differentiate\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pad":
			cfg.Fit.Pad = *pad
		case "threshold":
			cfg.Fit.Threshold = *threshold
		case "padding":
			cfg.Fit.Padding = *padding
		case "backend":
			cfg.Fit.Backend = *backend
		case "order":
			cfg.Evaluate.Order = *order
		case "derivative":
			cfg.Evaluate.Derivative = *derivative
		case "block":
			cfg.Processing.BlockSize = *block
		case "parallel":
			cfg.Processing.Parallel = *parallel
		case "v":
			cfg.Processing.Verbose = *verbose
		}
	})

	if err := cfg.Validate(); err != nil {
		return err
	}
	modelConfig, err := cfg.ModelConfig()
	if err != nil {
		return err
	}

	inputPath := args[0]
	outputPath := args[1]

	if cfg.Processing.Verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Block: %d frames, pad %d (%s), backend %s",
			cfg.Processing.BlockSize, modelConfig.Pad, modelConfig.Padding, modelConfig.Backend)
		log.Printf("Threshold: %g, order: %d, derivative: %d",
			modelConfig.Threshold, cfg.Evaluate.Order, cfg.Evaluate.Derivative)
		if modelConfig.EnableParallel {
			log.Printf("Parallel: enabled (concurrent channel fitting)")
		} else {
			log.Printf("Parallel: disabled (sequential fitting)")
		}
	}

	start := time.Now()
	stats, err := processWAV(inputPath, outputPath, cfg, modelConfig)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Processed %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d frames in %d blocks\n", stats.frames, stats.blocks)
	if stats.models > 0 {
		fmt.Printf("  Mean kept harmonics per block: %.1f\n", float64(stats.keptBins)/float64(stats.models))
	}
	if elapsed > 0 && stats.rate > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.frames)/float64(stats.rate)/elapsed.Seconds())
	}

	return nil
}

type processStats struct {
	rate     int
	channels int
	bitDepth int
	frames   int
	blocks   int
	models   int
	keptBins int
}

func processWAV(inputPath, outputPath string, cfg *config.Config, modelConfig *fourierseries.Config) (stats *processStats, err error) {
	// 1. Open and decode input
	input, err := openWAVInput(inputPath, cfg.Processing.Verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	pcm, err := input.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	// 2. Create output writer
	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// patches the WAV header on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 3. Initialize processing buffers
	buffers := newBlockBuffers(input.channels, cfg.Processing.BlockSize, input.bitDepth)
	deriv := fourierseries.Derivative(cfg.Evaluate.Derivative)

	frames := len(pcm.Data) / input.channels
	stats = &processStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
		frames:   frames,
	}
	progress := newProgressTracker(int64(frames), cfg.Processing.Verbose)

	// 4. Main processing loop
	for offset := 0; offset < frames; offset += cfg.Processing.BlockSize {
		n := min(cfg.Processing.BlockSize, frames-offset)
		data := pcm.Data[offset*input.channels : (offset+n)*input.channels]

		deinterleaveInto(data, buffers.channelBufs, input.channels, n, buffers.invMaxVal)

		processed, models, err := processBlock(buffers.channelBufs, n, offset, modelConfig, cfg.Evaluate.Order, deriv)
		if err != nil {
			return nil, fmt.Errorf("block at frame %d: %w", offset, err)
		}

		for ch, model := range models {
			stats.models++
			stats.keptBins += model.Info().KeptBins
			if cfg.Processing.Verbose && deriv == fourierseries.Value {
				if rms, err := model.RMSError(blockAbscissas(offset, n), buffers.channelBufs[ch][:n]); err == nil {
					log.Printf("Block %d channel %d: %d harmonics kept, RMS error %.3g",
						stats.blocks, ch, model.Info().KeptBins, rms)
				}
			}
		}

		outputLen := interleaveInto(processed, buffers.outputIntBuf, buffers.maxVal)
		if err := output.WriteSamples(buffers.outputIntBuf[:outputLen]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.blocks++
		progress.reportIfNeeded(int64(offset + n))
	}

	return stats, nil
}
