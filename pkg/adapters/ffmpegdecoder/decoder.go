// Package ffmpegdecoder decodes whole videos into frames by streaming them
// out of an ffmpeg subprocess.
//
// When the container can be probed the frames are streamed as raw RGBA at the
// probed dimensions. Otherwise ffmpeg is asked for a PNG image stream, which
// is self-describing and works for any container ffmpeg understands.
package ffmpegdecoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/user/pinframe/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
	ErrFFmpegNotFound = errors.New("ffmpegdecoder: ffmpeg not found")

	// ErrTruncatedFrame is returned when a raw stream ends mid-frame.
	ErrTruncatedFrame = errors.New("ffmpegdecoder: truncated frame")
)

// Options configures a Decoder.
type Options struct {
	// FFmpegPath overrides executable lookup.
	FFmpegPath string

	// Probe supplies frame dimensions for raw streaming. Nil forces PNG streaming.
	Probe ports.VideoProbe

	Logger ports.Logger
}

// Decoder implements ports.VideoDecoder with an ffmpeg subprocess per video.
type Decoder struct {
	customPath string
	probe      ports.VideoProbe
	logger     ports.Logger

	mu         sync.Mutex
	ffmpegPath string
}

// New creates a Decoder. The ffmpeg executable is located on first use.
func New(opts Options) *Decoder {
	return &Decoder{
		customPath: opts.FFmpegPath,
		probe:      opts.Probe,
		logger:     opts.Logger.WithComponent("ffmpeg"),
	}
}

// ReadFrames decodes every frame of the video at path.
func (d *Decoder) ReadFrames(ctx context.Context, path string) ([]ports.VideoFrame, error) {
	bin, err := d.binary()
	if err != nil {
		return nil, err
	}

	if d.probe != nil {
		info, err := d.probe.Probe(path)
		if err == nil && info.Width > 0 && info.Height > 0 {
			d.logger.Debug("Decoding %s as raw %dx%d %s stream", path, info.Width, info.Height, info.Codec)
			return d.run(ctx, bin, rawArgs(path, info.Width, info.Height), func(r io.Reader) ([]image.Image, error) {
				return readRaw(r, info.Width, info.Height)
			}, frameDuration(info))
		}
		d.logger.Debug("Probe failed for %s, decoding as PNG stream: %v", path, err)
	}

	return d.run(ctx, bin, pngArgs(path), readPNG, 0)
}

// Close releases decoder resources. Subprocesses never outlive ReadFrames.
func (d *Decoder) Close() {}

type streamReader func(io.Reader) ([]image.Image, error)

func (d *Decoder) run(ctx context.Context, bin string, args []string, read streamReader, durationMs int) ([]ports.VideoFrame, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	images, readErr := read(stdout)
	if readErr != nil {
		// Unblock ffmpeg if it is still writing.
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if waitErr != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", waitErr, strings.TrimSpace(stderr.String()))
	}
	if readErr != nil {
		return nil, readErr
	}

	frames := make([]ports.VideoFrame, len(images))
	for i, img := range images {
		frames[i] = ports.VideoFrame{
			Image:       img,
			TimestampMs: i * durationMs,
			Duration:    durationMs,
		}
	}
	return frames, nil
}

func (d *Decoder) binary() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ffmpegPath != "" {
		return d.ffmpegPath, nil
	}
	path, err := findFFmpeg(d.customPath)
	if err != nil {
		return "", err
	}
	d.ffmpegPath = path
	return path, nil
}

// findFFmpeg searches for ffmpeg in PATH and common locations.
// A non-empty custom path is used as is and must exist.
func findFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

func baseArgs(path string) []string {
	// Frames keep their stored orientation so points map to stored pixels.
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-noautorotate",
		"-i", path,
		"-map", "0:v:0",
		"-vsync", "0",
	}
}

func rawArgs(path string, width, height int) []string {
	return append(baseArgs(path),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", strconv.Itoa(width)+"x"+strconv.Itoa(height),
		"-",
	)
}

func pngArgs(path string) []string {
	return append(baseArgs(path),
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
}

// readRaw splits a raw RGBA stream into width x height frames.
func readRaw(r io.Reader, width, height int) ([]image.Image, error) {
	var images []image.Image
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		_, err := io.ReadFull(br, img.Pix)
		if err == io.EOF {
			return images, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: frame %d", ErrTruncatedFrame, len(images))
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", len(images), err)
		}
		images = append(images, img)
	}
}

// readPNG decodes consecutive PNG images until the stream ends.
func readPNG(r io.Reader) ([]image.Image, error) {
	var images []image.Image
	br := bufio.NewReader(r)
	for {
		if _, err := br.Peek(1); err == io.EOF {
			return images, nil
		}
		img, err := png.Decode(br)
		if err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", len(images), err)
		}
		images = append(images, img)
	}
}

// frameDuration estimates the per-frame duration from container metadata.
func frameDuration(info ports.VideoInfo) int {
	if info.SampleCount <= 0 || info.DurationMs <= 0 {
		return 0
	}
	return info.DurationMs / info.SampleCount
}

var _ ports.VideoDecoder = (*Decoder)(nil)
