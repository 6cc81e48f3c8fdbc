package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var providerHosts = []string{"youtube.com", "youtu.be"}

var downloadablePattern = regexp.MustCompile(
	`(?:https?://)?(?:youtu\.be/|(?:www\.|m\.)?youtube\.com/(?:watch|v|embed)(?:\.php)?(?:\?.*v=|/))([a-zA-Z0-9_-]+)`)

// IsRecognizedProvider reports whether rawURL points at a supported media host.
func IsRecognizedProvider(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}

	for _, known := range providerHosts {
		if host == known || strings.HasSuffix(host, "."+known) {
			return true
		}
	}

	return false
}

// IsDownloadable reports whether rawURL is a single video rather than a channel or
// other collection page.
func IsDownloadable(rawURL string) bool {
	return downloadablePattern.MatchString(rawURL)
}

func hostOf(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(u.Hostname())
}
