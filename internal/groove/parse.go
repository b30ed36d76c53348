package groove

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GrooveScribe encodes one querystring key per instrument. Parsed in this
// fixed order so output is stable across calls.
var instrumentKeys = []struct {
	key  string
	name string
}{
	{"H", "hihat"},
	{"S", "snare"},
	{"K", "kick"},
	{"T1", "tom1"},
	{"T2", "tom2"},
	{"T3", "tom3"},
	{"T4", "tom4"},
}

// ParseURL decodes a GrooveScribe URL (or bare pattern querystring) into a
// Pattern ready for ToBlocks.
//
// The query carries TimeSig (e.g. 4/4), Div (subdivision, 16 = sixteenth
// notes), Tempo, Measures and per-instrument hit grids like
// H=|x-x-x-x-|x-x-x-x-|, one pipe-delimited segment per measure. Rests are
// '-' or '0'; any other character is a hit, uppercase meaning accented.
func ParseURL(raw string) (Pattern, error) {
	query, err := patternQuery(raw)
	if err != nil {
		return Pattern{}, err
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Pattern{}, fmt.Errorf("malformed pattern query: %w", err)
	}

	num, den, err := parseTimeSig(values.Get("TimeSig"))
	if err != nil {
		return Pattern{}, err
	}

	div := 16
	if v := values.Get("Div"); v != "" {
		div, err = strconv.Atoi(v)
		if err != nil || div <= 0 {
			return Pattern{}, fmt.Errorf("invalid subdivision %q", v)
		}
	}

	perMeasure := div * num / den
	if perMeasure <= 0 {
		return Pattern{}, fmt.Errorf("time signature %d/%d with subdivision %d yields no steps", num, den, div)
	}

	tempo := 0
	if v := values.Get("Tempo"); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			tempo = t
		}
	}

	var events []Event
	maxSteps := 0
	for _, inst := range instrumentKeys {
		hits := values.Get(inst.key)
		if hits == "" {
			continue
		}
		steps := 0
		for _, r := range hits {
			if r == '|' || r == ' ' {
				continue
			}
			steps++
			if r == '-' || r == '0' {
				continue
			}
			events = append(events, Event{
				Step:       steps,
				Instrument: inst.name,
				Accent:     r >= 'A' && r <= 'Z',
			})
		}
		if steps > maxSteps {
			maxSteps = steps
		}
	}

	total := maxSteps
	if v := values.Get("Measures"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			total = m * perMeasure
		}
	}
	if total == 0 {
		total = perMeasure
	}

	return Pattern{
		RawURL: raw,
		Grid:   Grid{StepsPerMeasure: perMeasure, TotalSteps: total},
		Tempo:  tempo,
		Events: events,
	}, nil
}

// patternQuery pulls the pattern querystring out of a full URL, a bare
// "?TimeSig=..." fragment, or a naked "TimeSig=..." string.
func patternQuery(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	switch {
	case t == "":
		return "", fmt.Errorf("empty pattern source")
	case strings.HasPrefix(t, "?"):
		return t[1:], nil
	case strings.HasPrefix(strings.ToLower(t), "http://"), strings.HasPrefix(strings.ToLower(t), "https://"):
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("unparseable pattern url: %w", err)
		}
		if u.RawQuery != "" {
			return u.RawQuery, nil
		}
		if i := strings.Index(t, "TimeSig="); i >= 0 {
			return t[i:], nil
		}
		return "", fmt.Errorf("pattern url carries no query: %s", t)
	case strings.Contains(t, "="):
		return t, nil
	default:
		return "", fmt.Errorf("not a groovescribe pattern source: %q", raw)
	}
}

func parseTimeSig(s string) (num, den int, err error) {
	if s == "" {
		return 4, 4, nil
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	}
	num, err = strconv.Atoi(parts[0])
	if err != nil || num <= 0 {
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	}
	den, err = strconv.Atoi(parts[1])
	if err != nil || den <= 0 {
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	}
	return num, den, nil
}
