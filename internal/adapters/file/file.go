package file

import (
	"bangerbot/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Download writes the content found at url into path. A partial file is removed on failure.
func Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("error creating file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	n, err := io.Copy(f, res.Body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		err = fmt.Errorf("error writing file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	log.Debug().Str("path", path).Int64("bytes", n).Msg("downloaded file")

	return nil
}

// DetectMimeType sniffs the content type of the file at path.
func DetectMimeType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("error detecting mime type %w", err)
	}

	return mtype.String(), nil
}

// Remove deletes the file at path. Failures wrap domain.ErrRemoveFileFailed.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up file")
		return fmt.Errorf("%w: %w", domain.ErrRemoveFileFailed, err)
	}
	log.Debug().Str("path", path).Msg("cleaned up file")

	return nil
}
