package port

import "context"

type SampleConverter interface {
	// Sample decodes the audio file at path into a short raw PCM excerpt suitable for fingerprinting.
	Sample(ctx context.Context, path string) ([]byte, error)
}
