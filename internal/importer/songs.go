package importer

import (
	"fmt"
	"strings"

	"musicdott/internal/embed"
)

// Song is the 2.0 songs JSON shape.
type Song struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Instrument  string `json:"instrument"`
	Level       string `json:"level"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// ConvertSongs maps POS_Songs rows to 2.0 song objects. onRow, when non-nil,
// is called once per processed row.
func ConvertSongs(rows []map[string]string, onRow func()) []Song {
	songs := make([]Song, 0, len(rows))

	for n, row := range rows {
		title := safeGet(row, "soTitel", "titel")
		if title == "" {
			title = fmt.Sprintf("Song #%d", n+1)
		}
		artist := safeGet(row, "soArtiest", "artiest")
		if artist == "" {
			artist = "Unknown Artist"
		}

		var descParts []string
		if genre := safeGet(row, "soGenre", "genre"); genre != "" && genre != "0" {
			descParts = append(descParts, "Genre: "+genre)
		}
		if bpm := safeGet(row, "soBPM", "bpm"); bpm != "" && bpm != "0" {
			descParts = append(descParts, "BPM: "+bpm)
		}
		if length := safeGet(row, "soLengte", "lengte"); length != "" && length != "0" {
			descParts = append(descParts, "Lengte: "+length)
		}

		var contentParts []string

		if youtube := safeGet(row, "soYouTube", "youtube"); youtube != "" {
			contentParts = append(contentParts, renderModule(embed.NormalizeYouTube(youtube)))
		}
		if spotify := safeGet(row, "soSpotify", "spotify"); spotify != "" {
			contentParts = append(contentParts, "Spotify: "+spotify)
		}
		if apple := safeGet(row, "soAppleMusic", "apple_music"); apple != "" {
			contentParts = append(contentParts, "Apple Music: "+apple)
		}
		if lyrics := safeGet(row, "soLyrics", "lyrics"); lyrics != "" {
			contentParts = append(contentParts, "Lyrics: "+lyrics)
		}

		// Up to three notation columns, each with its own remarks.
		for i := 1; i <= 3; i++ {
			notation := safeGet(row, fmt.Sprintf("soNotatie0%d", i), fmt.Sprintf("notatie0%d", i))
			if notation == "" {
				continue
			}
			contentParts = append(contentParts, renderModule(embed.NormalizeGrooveScribe(notation)))

			if remarks := safeGet(row, fmt.Sprintf("soOpmerkingen0%d", i), fmt.Sprintf("opmerkingen0%d", i)); remarks != "" {
				contentParts = append(contentParts, "Note: "+remarks)
			}
		}

		songs = append(songs, Song{
			Title:       title,
			Artist:      artist,
			Instrument:  "drums",
			Level:       "all",
			Description: strings.Join(descParts, " | "),
			Content:     strings.Join(contentParts, "\n\n"),
		})

		if onRow != nil {
			onRow()
		}
	}

	return songs
}
