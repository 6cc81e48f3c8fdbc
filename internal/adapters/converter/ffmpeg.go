package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	SampleRate    = 44100
	SampleSeconds = 5
)

// FFmpegConverter decodes audio files with the ffmpeg binary.
type FFmpegConverter struct {
	ffmpegBinary string
}

// NewFFmpegConverter checks that binary (or "ffmpeg" when empty) runs.
func NewFFmpegConverter(binary string) (*FFmpegConverter, error) {
	if binary == "" {
		binary = "ffmpeg"
	}

	_, err := exec.Command(binary, "-version").Output()
	if err != nil {
		log.Debug().Str("binary", binary).Msg("binary not found")
		return nil, errors.New("ffmpeg binary not available")
	}

	log.Debug().Str("binary", binary).Msg("binary found")

	return &FFmpegConverter{ffmpegBinary: binary}, nil
}

// Sample returns the first SampleSeconds of the file at path as raw signed 16-bit little-endian mono PCM.
func (f *FFmpegConverter) Sample(ctx context.Context, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, f.ffmpegBinary, sampleArgs(path)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		log.Error().Str("ffmpegStderr", stderr.String()).Msg("ffmpeg command failed")
		return nil, fmt.Errorf("error sampling %s: %w", path, err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no samples for %s", path)
	}

	log.Debug().Int("bytes", stdout.Len()).Msg("ffmpeg command finished")

	return stdout.Bytes(), nil
}

func sampleArgs(path string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-t", strconv.Itoa(SampleSeconds),
		"-ac", "1",
		"-ar", strconv.Itoa(SampleRate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"pipe:1",
	}
}
