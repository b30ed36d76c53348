package embed

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GrooveEmbedHost is the canonical iframe source for GrooveScribe patterns.
// Legacy content also references the tool's original home at mikeslessons.com;
// those URLs are rewritten onto this host, carrying their query unchanged.
const GrooveEmbedHost = "https://teacher.musicdott.com/groovescribe/GrooveEmbed.html"

// extraction is the result of a successful provider match: classification plus
// the rewritten embed URL. The raw input is attached later so that iframe
// delegation can match on the extracted src while preserving the full input.
type extraction struct {
	provider Provider
	typ      Type
	embedURL string
}

type extractor func(string) (extraction, bool)

// extractors are tried in fixed priority order: GrooveScribe before YouTube
// before Spotify. Order matters: a GrooveScribe URL whose query mentions a
// video must still classify as notation.
var extractors = []extractor{
	extractGrooveScribe,
	extractYouTube,
	extractSpotify,
}

// Normalize classifies a raw content fragment and rewrites it into canonical
// embeddable form. It is total over strings: unrecognized, malformed or empty
// input yields a fallback module, never an error.
func Normalize(raw string) Module {
	// Iframe markup: classify on the extracted src only, so stray provider
	// URLs elsewhere in the markup (a title attribute, say) cannot outrank
	// what the iframe actually embeds. A src that matches no provider
	// classifies the input as an external link, but the fallback still
	// surfaces the complete original markup.
	if src, ok := iframeSrc(raw); ok {
		for _, ex := range extractors {
			if e, ok := ex(src); ok {
				return embedded(raw, e.provider, e.typ, e.embedURL)
			}
		}
		return fallback(raw, ProviderExternal)
	}

	for _, ex := range extractors {
		if e, ok := ex(raw); ok {
			return embedded(raw, e.provider, e.typ, e.embedURL)
		}
	}

	if looksLikeURL(raw) {
		return fallback(raw, ProviderExternal)
	}
	return fallback(raw, ProviderUnknown)
}

// NormalizeGrooveScribe applies only the GrooveScribe recognition rule.
func NormalizeGrooveScribe(raw string) Module {
	return normalizeWith(raw, extractGrooveScribe)
}

// NormalizeYouTube applies only the YouTube recognition rule.
func NormalizeYouTube(raw string) Module {
	return normalizeWith(raw, extractYouTube)
}

// NormalizeSpotify applies only the Spotify recognition rule.
func NormalizeSpotify(raw string) Module {
	return normalizeWith(raw, extractSpotify)
}

// normalizeWith runs a single provider's extractor against the input, or
// against the src when the input is iframe markup. Non-matching input
// degrades to a fallback module with provider unknown; narrow-scope
// normalizers never error on mismatch.
func normalizeWith(raw string, ex extractor) Module {
	target := raw
	if src, ok := iframeSrc(raw); ok {
		target = src
	}
	if e, ok := ex(target); ok {
		return embedded(raw, e.provider, e.typ, e.embedURL)
	}
	return fallback(raw, ProviderUnknown)
}

var iframeSrcPattern = regexp.MustCompile(`(?i)<iframe[^>]*\ssrc=["']([^"']+)["']`)

// iframeSrc extracts the src attribute when the input is iframe markup.
func iframeSrc(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(t), "<iframe") {
		return "", false
	}
	m := iframeSrcPattern.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func looksLikeURL(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}

// GrooveScribe patterns live entirely in the URL query (TimeSig, Div, Tempo,
// hit grids). Recognition accepts the canonical host, the legacy
// mikeslessons.com alias, and bare querystrings pasted without a host.
var grooveHosts = map[string]bool{
	"teacher.musicdott.com": true,
	"www.mikeslessons.com":  true,
	"mikeslessons.com":      true,
}

func extractGrooveScribe(s string) (extraction, bool) {
	t := strings.TrimSpace(s)

	// Bare querystring: "?TimeSig=..." or "TimeSig=...".
	if strings.HasPrefix(t, "?TimeSig=") || strings.HasPrefix(t, "TimeSig=") {
		query := strings.TrimPrefix(t, "?")
		return grooveExtraction(query), true
	}

	if !looksLikeURL(t) {
		return extraction{}, false
	}
	u, err := url.Parse(t)
	if err != nil {
		return extraction{}, false
	}

	host := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)
	if !grooveHosts[host] && !strings.Contains(path, "groovescribe") {
		return extraction{}, false
	}

	query := u.RawQuery
	if query == "" {
		// Some legacy exports mangled the '?'; salvage from the raw string.
		if i := strings.Index(t, "TimeSig="); i >= 0 {
			query = t[i:]
		}
	}
	if !strings.Contains(query, "TimeSig=") {
		return extraction{}, false
	}
	return grooveExtraction(query), true
}

func grooveExtraction(query string) extraction {
	return extraction{
		provider: ProviderGrooveScribe,
		typ:      TypeNotation,
		embedURL: GrooveEmbedHost + "?" + query,
	}
}

// YouTube video IDs are exactly 11 characters from the base64url alphabet.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^"'\s]*&)?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{11})`),
}

var youtubeStartPattern = regexp.MustCompile(`[?&](?:t|start)=(\d+)`)

func extractYouTube(s string) (extraction, bool) {
	t := strings.TrimSpace(s)
	for _, p := range youtubePatterns {
		m := p.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		embedURL := "https://www.youtube.com/embed/" + m[1]
		if sm := youtubeStartPattern.FindStringSubmatch(t); sm != nil {
			embedURL = fmt.Sprintf("%s?start=%s", embedURL, sm[1])
		}
		return extraction{provider: ProviderYouTube, typ: TypeVideo, embedURL: embedURL}, true
	}
	return extraction{}, false
}

var (
	spotifyURIPattern = regexp.MustCompile(`(?i)^spotify:(track|album|playlist|episode):([A-Za-z0-9]+)$`)
	spotifyURLPattern = regexp.MustCompile(`(?i)(?:https?://)?open\.spotify\.com/(?:intl-[a-z]{2}(?:-[a-z]{2})?/)?(track|album|playlist|episode)/([A-Za-z0-9]+)`)
)

func extractSpotify(s string) (extraction, bool) {
	t := strings.TrimSpace(s)

	m := spotifyURIPattern.FindStringSubmatch(t)
	if m == nil {
		m = spotifyURLPattern.FindStringSubmatch(t)
	}
	if m == nil {
		return extraction{}, false
	}

	kind := strings.ToLower(m[1])
	return extraction{
		provider: ProviderSpotify,
		typ:      TypeVideo,
		embedURL: fmt.Sprintf("https://open.spotify.com/embed/%s/%s", kind, m[2]),
	}, true
}
