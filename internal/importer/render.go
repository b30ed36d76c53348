package importer

import (
	"fmt"

	"musicdott/internal/embed"
)

// renderModule turns a normalized module into the content markup stored on
// songs and lessons. Embedded notation and video become iframes (matching
// what the 2.0 editor produces); everything else surfaces the safe fallback.
func renderModule(m embed.Module) string {
	if !m.Embeddable() {
		return m.Fallback.URL
	}

	switch m.Provider {
	case embed.ProviderGrooveScribe:
		return fmt.Sprintf(`<iframe width="100%%" height="240" src="%s" frameborder="0"></iframe>`, *m.Embed.EmbedURL)
	case embed.ProviderYouTube:
		return fmt.Sprintf(`<iframe width="560" height="315" src="%s" title="YouTube video player" frameborder="0" allowfullscreen></iframe>`, *m.Embed.EmbedURL)
	default:
		return *m.Embed.EmbedURL
	}
}
