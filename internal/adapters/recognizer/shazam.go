package recognizer

import (
	"bangerbot/internal/adapters/file"
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Shazam identifies songs through a Shazam-compatible detect endpoint (RapidAPI flavour),
// which takes a base64 encoded raw PCM sample as the request body.
type Shazam struct {
	converter port.SampleConverter
	endpoint  string
	host      string
	apiKey    string
	client    *http.Client
}

func NewShazam(converter port.SampleConverter, endpoint, host, apiKey string) *Shazam {
	return &Shazam{
		converter: converter,
		endpoint:  endpoint,
		host:      host,
		apiKey:    apiKey,
		client:    &http.Client{},
	}
}

// Identify samples the file at path, removes it and asks the API for a match.
func (s *Shazam) Identify(ctx context.Context, path string) (*domain.RecognizedTrack, error) {
	sample, sampleErr := s.converter.Sample(ctx, path)

	err := file.Remove(path)
	if err != nil {
		return nil, err
	}

	if sampleErr != nil {
		return nil, fmt.Errorf("error sampling audio: %w", sampleErr)
	}

	body, err := s.postDetectRequest(ctx, sample)
	if err != nil {
		return nil, fmt.Errorf("shazam request failed: %w", err)
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error unmarshalling shazam response: %w", err)
	}

	track, err := domain.NewRecognizedTrack(response)
	if err != nil {
		log.Debug().Err(err).Msg("shazam returned no usable match")
		return nil, err
	}

	log.Debug().Str("title", track.Title).Str("subtitle", track.Subtitle).Msg("shazam match")

	return track, nil
}

func (s *Shazam) postDetectRequest(ctx context.Context, sample []byte) ([]byte, error) {
	payload := base64.StdEncoding.EncodeToString(sample)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBufferString(payload))
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for shazam")
		return nil, err
	}

	req.Header.Add("Content-Type", "text/plain")
	req.Header.Add("X-RapidAPI-Key", s.apiKey)
	req.Header.Add("X-RapidAPI-Host", s.host)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing shazam request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading shazam response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from shazam: %d", res.StatusCode)
	}

	return body, nil
}
