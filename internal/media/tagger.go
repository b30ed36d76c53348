// Package media stamps metadata onto audio attachments staged during a
// legacy import, so files land in the new library already tagged.
package media

import (
	"fmt"
	"strings"

	"go.senan.xyz/taglib"
)

// WriteTrackTags writes title/artist (and optionally genre) tags to an audio file.
func WriteTrackTags(path, title, artist, genre string) error {
	tags := make(map[string][]string)

	if title != "" {
		tags[taglib.Title] = []string{title}
	}
	if artist != "" {
		tags[taglib.Artist] = []string{artist}
	}
	if genre != "" {
		tags[taglib.Genre] = []string{genre}
	}
	if len(tags) == 0 {
		return nil
	}

	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// TrackTitle reads an audio file's title tag, falling back to "" when the
// file carries none or can't be read.
func TrackTitle(path string) string {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return ""
	}
	return firstTag(tags, taglib.Title)
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
