// Package groove converts GrooveScribe drum patterns (a URL-encoded grid of
// timed note events) into discrete per-measure content blocks.
package groove

// TagGrooveScribe is attached to every block produced from a GrooveScribe source.
const TagGrooveScribe = "groovescribe"

// Grid describes the sequencer geometry of a pattern.
type Grid struct {
	StepsPerMeasure int `json:"steps_per_measure"`
	TotalSteps      int `json:"total_steps"`
}

// Event is a single note hit on the grid. Step is 1-based and global across
// the whole pattern.
type Event struct {
	Step       int    `json:"step"`
	Instrument string `json:"instrument"`
	Accent     bool   `json:"accent,omitempty"`
}

// Pattern is the segmenter input: the source URL, the grid geometry and a
// flat list of note events.
type Pattern struct {
	RawURL string  `json:"rawUrl"`
	Grid   Grid    `json:"grid"`
	Tempo  int     `json:"tempo,omitempty"`
	Events []Event `json:"events"`
}

// BlockSource records where a block came from, for round-trip attribution.
type BlockSource struct {
	URL string `json:"url"`
}

// Block is one measure's worth of a pattern.
type Block struct {
	LengthSteps int         `json:"length_steps"`
	Events      []Event     `json:"events"`
	Source      BlockSource `json:"source"`
	Tags        []string    `json:"tags"`
}
