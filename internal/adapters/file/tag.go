package file

import (
	"bangerbot/internal/core/domain"
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog/log"
)

// ID3Tagger writes ID3v2.3 frames onto mp3 files.
type ID3Tagger struct{}

func NewID3Tagger() *ID3Tagger {
	return &ID3Tagger{}
}

// Tag sets the title (metadata.Title, else fallbackTitle) and every other tag present in metadata.
// Tags left empty in metadata keep whatever the file already carries.
func (t *ID3Tagger) Tag(path string, metadata domain.Metadata, fallbackTitle string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3 open error: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	title := metadata.Title
	if title == "" {
		title = fallbackTitle
	}
	tag.SetTitle(title)

	if metadata.Artist != "" {
		tag.SetArtist(metadata.Artist)
	}
	if metadata.Album != "" {
		tag.SetAlbum(metadata.Album)
	}
	if metadata.Genre != "" {
		tag.SetGenre(metadata.Genre)
	}
	if !metadata.Year.IsEmpty() {
		tag.SetYear(metadata.Year.String())
	}
	if !metadata.Track.IsEmpty() {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), metadata.Track.String())
	}

	err = tag.Save()
	if err != nil {
		return fmt.Errorf("id3 save error: %w", err)
	}

	log.Debug().Str("path", path).Str("title", title).Msg("wrote id3 tags")

	return nil
}
