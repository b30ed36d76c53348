package importer

import (
	"fmt"
	"strings"

	"musicdott/internal/embed"
)

// Lesson is the 2.0 lessons JSON shape.
type Lesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"contentType"`
	Instrument  string `json:"instrument"`
	Level       string `json:"level"`
	Content     string `json:"content"`
}

// Asset is an audio attachment referenced by a lesson row, to be staged and
// tagged alongside the converted JSON.
type Asset struct {
	File  string
	Title string
}

// ConvertLessons maps POS_Notatie rows to 2.0 lesson objects. Locally
// referenced MP3 attachments are reported separately so the caller can stage
// them. onRow, when non-nil, is called once per processed row.
func ConvertLessons(rows []map[string]string, onRow func()) ([]Lesson, []Asset) {
	lessons := make([]Lesson, 0, len(rows))
	var assets []Asset

	for n, row := range rows {
		category := safeGet(row, "noCategorie", "categorie")
		chapter := safeGet(row, "noHoofdstuk", "hoofdstuk")
		sequence := safeGet(row, "noVolgnummer", "volgnummer")

		var title string
		switch {
		case category != "" && chapter != "" && sequence != "":
			title = fmt.Sprintf("%s – %s – #%s", category, chapter, sequence)
		case category != "" && sequence != "":
			title = fmt.Sprintf("%s – #%s", category, sequence)
		default:
			title = fmt.Sprintf("Pattern #%d", n+1)
		}

		var contentParts []string

		if notation := safeGet(row, "noNotatie", "notatie"); notation != "" {
			contentParts = append(contentParts, renderModule(embed.NormalizeGrooveScribe(notation)))
		}
		if video := safeGet(row, "noVideo", "video"); video != "" {
			contentParts = append(contentParts, "Video: "+renderModule(embed.NormalizeYouTube(video)))
		}
		if musescore := safeGet(row, "noMusescore", "musescore"); musescore != "" {
			contentParts = append(contentParts, "MuseScore: "+musescore)
		}
		if musicxml := safeGet(row, "musicxml"); musicxml != "" {
			contentParts = append(contentParts, "MusicXML: "+musicxml)
		}
		if pdf := safeGet(row, "noPDFlesson", "pdf_lesson"); pdf != "" {
			contentParts = append(contentParts, "PDF: "+pdf)
		}
		if mp3 := safeGet(row, "noMP3", "mp3"); mp3 != "" {
			contentParts = append(contentParts, "MP3: "+mp3)
			if !strings.Contains(mp3, "://") {
				assets = append(assets, Asset{File: mp3, Title: title})
			}
		}

		lessons = append(lessons, Lesson{
			Title:       title,
			Description: safeGet(row, "noOpmerkingen", "opmerkingen"),
			ContentType: "notation",
			Instrument:  "drums",
			Level:       "all",
			Content:     strings.Join(contentParts, "\n\n"),
		})

		if onRow != nil {
			onRow()
		}
	}

	return lessons, assets
}
