package domain

import "fmt"

// NewRecognizedTrack builds a RecognizedTrack from a decoded recognizer response of the
// form {"track": {"title", "subtitle", "images": {"coverarthq"}, "hub": {"providers":
// [{"caption", "actions": [{"uri"}]}]}}}. Any missing field yields ErrTrackNotFound.
func NewRecognizedTrack(response map[string]any) (*RecognizedTrack, error) {
	track, ok := response["track"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: no track in response", ErrTrackNotFound)
	}

	title, ok := track["title"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing title", ErrTrackNotFound)
	}

	subtitle, ok := track["subtitle"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing subtitle", ErrTrackNotFound)
	}

	images, _ := track["images"].(map[string]any)
	cover, ok := images["coverarthq"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing cover art", ErrTrackNotFound)
	}

	hub, _ := track["hub"].(map[string]any)
	provider, ok := firstObject(hub["providers"])
	if !ok {
		return nil, fmt.Errorf("%w: missing providers", ErrTrackNotFound)
	}

	caption, ok := provider["caption"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing provider caption", ErrTrackNotFound)
	}

	action, ok := firstObject(provider["actions"])
	if !ok {
		return nil, fmt.Errorf("%w: missing provider actions", ErrTrackNotFound)
	}

	uri, ok := action["uri"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing provider uri", ErrTrackNotFound)
	}

	return &RecognizedTrack{
		Title:         title,
		Subtitle:      subtitle,
		CoverImageURL: cover,
		FirstProvider: Provider{Caption: caption, URI: uri},
	}, nil
}

// Caption is the text shown under the cover art of an identified track.
func (t *RecognizedTrack) Caption() string {
	return fmt.Sprintf("%s - %s", t.Subtitle, t.Title)
}

func firstObject(v any) (map[string]any, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}

	obj, ok := list[0].(map[string]any)
	return obj, ok
}
