package domain

import (
	"regexp"
	"strings"
)

// TagSeparator splits tag fragments in a message, e.g. "<url> && artist: Foo && year: 2014".
const TagSeparator = "&&"

var urlPattern = regexp.MustCompile(`(?i)\b((?:https?://|www\d{0,3}[.]|[a-z0-9.\-]+[.][a-z]{2,4}/)` +
	`(?:[^\s()<>]+|\(([^\s()<>]+|(\([^\s()<>]+\)))*\))+` +
	`(?:\(([^\s()<>]+|(\([^\s()<>]+\)))*\)|[^\s` + "`" + `!()\[\]{};:'".,<>?«»“”‘’]))`)

// Stray ampersands left over from a longer separator ("&&&") are not part of the key.
var tagPattern = regexp.MustCompile(`(?s)^[\s&]*(artist|year|genre|album|title|folder|track):(.*)$`)

// ParseMetadata extracts the first URL and any "&& key: value" tags from text.
// It never fails: missing parts are left empty.
func ParseMetadata(text string) Metadata {
	var m Metadata

	m.URL = urlPattern.FindString(text)

	seen := make(map[string]bool)
	fragments := strings.Split(text, TagSeparator)
	for _, fragment := range fragments[1:] {
		match := tagPattern.FindStringSubmatch(fragment)
		if match == nil {
			continue
		}

		key, value := match[1], strings.TrimSpace(match[2])
		if seen[key] {
			continue
		}
		seen[key] = true

		switch key {
		case "artist":
			m.Artist = value
		case "year":
			m.Year = ParseTagNumber(value)
		case "track":
			m.Track = ParseTagNumber(value)
		case "genre":
			m.Genre = value
		case "album":
			m.Album = value
		case "title":
			m.Title = value
		case "folder":
			folder := value
			m.Folder = &folder
		}
	}

	return m
}
