package extractor

import (
	"bangerbot/internal/adapters/file"
	"bangerbot/internal/core/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"
)

const (
	AudioFormat       = "mp3"
	AudioQuality      = "320K"
	ProgressFrequency = 500 * time.Millisecond
)

// YTDLP extracts audio from videos with the yt-dlp binary. Every extraction gets its own
// directory under dir and the file is written there as "<video id>.mp3".
type YTDLP struct {
	binary string
	dir    string
}

func NewYTDLP(binary, dir string) *YTDLP {
	return &YTDLP{binary: binary, dir: dir}
}

type videoInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (y *YTDLP) ExtractAudio(ctx context.Context, url string,
	progress func(domain.Progress)) (*domain.AudioTrack, error) {
	l := log.With().Str("url", url).Logger()

	info, err := y.fetchInfo(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	l = l.With().Str("videoId", info.ID).Logger()
	l.Debug().Str("title", info.Title).Msg("fetched video info")

	workDir, err := os.MkdirTemp(y.dir, "ytdlp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: error creating work dir: %w", domain.ErrExtractionFailed, err)
	}

	l = l.With().Str("workDir", workDir).Logger()

	_, err = y.command().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(AudioFormat).
		AudioQuality(AudioQuality).
		NoPlaylist().
		Output(filepath.Join(workDir, "%(id)s.%(ext)s")).
		ProgressFunc(ProgressFrequency, func(update ytdlp.ProgressUpdate) {
			if p, ok := toProgress(update); ok && progress != nil {
				progress(p)
			}
		}).
		Run(ctx, url)
	if err != nil {
		l.Error().Err(err).Msg("yt-dlp download failed")
		removeWorkDir(workDir)
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	path := audioPath(workDir, info.ID)

	mimeType, err := file.DetectMimeType(path)
	if err != nil {
		removeWorkDir(workDir)
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	l.Info().Str("path", path).Str("mimeType", mimeType).Msg("extracted audio")

	return &domain.AudioTrack{
		DisplayTitle: info.Title,
		NativeID:     info.ID,
		Path:         path,
		Dir:          workDir,
		MimeType:     mimeType,
	}, nil
}

func (y *YTDLP) fetchInfo(ctx context.Context, url string) (videoInfo, error) {
	result, err := y.command().
		DumpSingleJSON().
		NoPlaylist().
		Run(ctx, url)
	if err != nil {
		return videoInfo{}, fmt.Errorf("error fetching video info: %w", err)
	}

	return parseInfo([]byte(result.Stdout))
}

func (y *YTDLP) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if y.binary != "" {
		cmd = cmd.SetExecutable(y.binary)
	}
	return cmd
}

func audioPath(workDir, id string) string {
	return filepath.Join(workDir, id+"."+AudioFormat)
}

// removeWorkDir drops whatever a failed run left behind, partial downloads included.
func removeWorkDir(workDir string) {
	if err := os.RemoveAll(workDir); err != nil {
		log.Warn().Err(err).Str("workDir", workDir).Msg("could not remove work dir")
	}
}

func parseInfo(raw []byte) (videoInfo, error) {
	var info videoInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return videoInfo{}, fmt.Errorf("error unmarshalling video info: %w", err)
	}

	if info.ID == "" {
		return videoInfo{}, errors.New("video info has no id")
	}

	if info.Title == "" {
		info.Title = info.ID
	}

	return info, nil
}

// toProgress maps a yt-dlp progress update. Updates for other stages are dropped.
func toProgress(update ytdlp.ProgressUpdate) (domain.Progress, bool) {
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		var percent float64
		if update.TotalBytes > 0 {
			percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		}
		return domain.Progress{Stage: domain.StageDownloading, Percent: percent}, true
	case ytdlp.ProgressStatusPostProcessing:
		return domain.Progress{Stage: domain.StagePostProcessing, Percent: 100}, true
	case ytdlp.ProgressStatusFinished:
		return domain.Progress{Stage: domain.StageFinished, Percent: 100}, true
	default:
		return domain.Progress{}, false
	}
}
