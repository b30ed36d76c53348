// Package embed classifies raw content fragments (pasted URLs, legacy iframe
// markup) and rewrites them into a canonical embeddable form.
//
// Every entry point is total: any string in, a well-formed Module out. Inputs
// that match no known provider degrade to a fallback module carrying the
// original text, so callers can always render something safe.
package embed

// Provider identifies the source system a fragment was recognized as.
type Provider string

const (
	ProviderGrooveScribe Provider = "groovescribe"
	ProviderYouTube      Provider = "youtube"
	ProviderSpotify      Provider = "spotify"
	ProviderExternal     Provider = "external"
	ProviderUnknown      Provider = "unknown"
)

// Type is the semantic kind of embeddable content.
type Type string

const (
	TypeNotation Type = "notation"
	TypeVideo    Type = "video"
	TypeExternal Type = "external"
)

// Status reports whether a renderable embed URL could be constructed.
type Status string

const (
	StatusEmbedded Status = "embedded"
	StatusFallback Status = "fallback"
)

// Source holds the original input and, when embeddable, the rewritten URL.
type Source struct {
	Raw      string  `json:"raw"`
	EmbedURL *string `json:"embed_url"`
}

// Fallback is the degraded-but-safe path: the caller renders URL as a plain link.
type Fallback struct {
	URL string `json:"url"`
}

// Module is the canonical description of a piece of embeddable content.
// Exactly one of the two shapes can occur: embedded (EmbedURL set, no
// Fallback) or fallback (EmbedURL nil, Fallback.URL equal to Embed.Raw).
type Module struct {
	Provider Provider  `json:"provider"`
	Type     Type      `json:"type"`
	Status   Status    `json:"status"`
	Embed    Source    `json:"embed"`
	Fallback *Fallback `json:"fallback,omitempty"`
}

// Embeddable reports whether the module carries a renderable embed URL.
func (m Module) Embeddable() bool { return m.Status == StatusEmbedded }

func embedded(raw string, p Provider, t Type, embedURL string) Module {
	return Module{
		Provider: p,
		Type:     t,
		Status:   StatusEmbedded,
		Embed:    Source{Raw: raw, EmbedURL: &embedURL},
	}
}

func fallback(raw string, p Provider) Module {
	return Module{
		Provider: p,
		Type:     TypeExternal,
		Status:   StatusFallback,
		Embed:    Source{Raw: raw},
		Fallback: &Fallback{URL: raw},
	}
}
