package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	fourierseries "github.com/jbhersch/fast-fourier-series"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file     *os.File
	encoder  *wav.Encoder
	format   *audio.Format
	bitDepth int
}

// createWAVOutput creates the output file and a PCM encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:     outputFile,
		encoder:  wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, pcmFormat),
		format:   &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		bitDepth: bitDepth,
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.encoder.Write(&audio.IntBuffer{
		Format:         w.format,
		Data:           samples,
		SourceBitDepth: w.bitDepth,
	})
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// blockBuffers holds the preallocated per-block buffers.
type blockBuffers struct {
	channelBufs  [][]float64
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newBlockBuffers preallocates buffers for blocks of up to blockSize frames.
func newBlockBuffers(channels, blockSize, bitDepth int) *blockBuffers {
	channelBufs := make([][]float64, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float64, blockSize)
	}

	maxVal := getMaxValue(bitDepth)

	return &blockBuffers{
		channelBufs:  channelBufs,
		outputIntBuf: make([]int, blockSize*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// blockAbscissas returns the frame indices offset..offset+n-1 as abscissas.
// Using sample units keeps derivatives in per-sample terms.
func blockAbscissas(offset, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(offset + i)
	}
	return x
}

// derivativeScale maps a per-sample derivative of a full-scale signal back
// into [-1, 1]. A signal band-limited to Nyquist has |y'| <= pi*max|y|.
func derivativeScale(deriv fourierseries.Derivative) float64 {
	return math.Pow(math.Pi, -float64(deriv))
}

// processBlock fits one model per channel to the first n frames of
// channelBufs and evaluates it back on the same frames. Blocks too short to
// fit pass through unchanged (Value) or as silence (derivatives).
func processBlock(
	channelBufs [][]float64,
	n, offset int,
	config *fourierseries.Config,
	order int,
	deriv fourierseries.Derivative,
) ([][]float64, []*fourierseries.Model, error) {
	processed := make([][]float64, len(channelBufs))

	if n < 2 {
		for ch := range channelBufs {
			processed[ch] = make([]float64, n)
			if deriv == fourierseries.Value {
				copy(processed[ch], channelBufs[ch][:n])
			}
		}
		return processed, nil, nil
	}

	x := blockAbscissas(offset, n)
	ys := make([][]float64, len(channelBufs))
	for ch := range channelBufs {
		ys[ch] = channelBufs[ch][:n]
	}

	models, err := fourierseries.FitMulti(x, ys, config)
	if err != nil {
		return nil, nil, err
	}

	scale := derivativeScale(deriv)
	for ch, model := range models {
		out, err := model.Evaluate(x, order, deriv)
		if err != nil {
			return nil, nil, fmt.Errorf("evaluation failed on channel %d: %w", ch, err)
		}
		if scale != 1 {
			for i := range out {
				out[i] *= scale
			}
		}
		processed[ch] = out
	}

	return processed, models, nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto(data []int, channelBufs [][]float64, numChannels, framesPerChannel int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range framesPerChannel {
			buf[i] = float64(data[i]) * invMaxVal
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range framesPerChannel {
			idx := i * stereoChannels
			buf0[i] = float64(data[idx]) * invMaxVal
			buf1[i] = float64(data[idx+1]) * invMaxVal
		}
		return
	}

	// General case
	for i := range framesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int
// buffer, clamping to [-1, 1] and rounding. Returns the number of elements
// written, or 0 when dst is too small.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	framesPerChannel := len(channels[0])
	totalLen := framesPerChannel * numChannels

	if len(dst) < totalLen {
		return 0
	}

	for i := range framesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			dst[base+ch] = int(math.Round(clampUnit(channels[ch][i]) * maxVal))
		}
	}

	return totalLen
}

func clampUnit(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}
