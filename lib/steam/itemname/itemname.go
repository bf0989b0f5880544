package itemname

import (
	"strings"

	"steamy/lib/telemetry"
)

const (
	report_parser_parse = "parser.parse"
)

const (
	CategorySticker  = "sticker"
	CategoryMusicKit = "musickit"
)

// Name is a market display name broken into its parts. Strings are lowercase and
// trimmed, an empty string means the part was not present.
type Name struct {
	Category string
	Skin     string
	Wear     string
	StatTrak bool
	Holo     bool
	MusicKit bool
	// Partial is set when the name did not follow the expected layout and only
	// part of it could be interpreted.
	Partial bool
}

type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	return Parser{tel: tel}
}

// Parse is Parser.Parse without reporting.
func Parse(raw string) Name {
	return NewParser(telemetry.NoopAPI{}).Parse(raw)
}

func stripWide(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r <= 0xff {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func afterPipe(name string) string {
	_, after, found := strings.Cut(name, "|")
	if !found {
		return name
	}
	return after
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p Parser) Parse(raw string) Name {
	name := stripWide(raw)
	trimmed := strings.TrimSpace(name)

	var out Name
	switch {
	case strings.HasPrefix(trimmed, "Sticker"):
		out.Category = CategorySticker
		out.Skin = afterPipe(name)
		if strings.Contains(out.Skin, "(holo)") {
			out.Skin = strings.ReplaceAll(out.Skin, "(holo)", "")
			out.Holo = true
		}
		if skin, wear, found := strings.Cut(out.Skin, "|"); found {
			out.Skin = skin
			out.Wear = wear
		}
	case strings.HasPrefix(trimmed, "Music Kit"):
		out.Category = CategoryMusicKit
		out.Skin = afterPipe(name)
		out.MusicKit = true
	default:
		p.parseGeneric(raw, name, &out)
	}

	out.Category = normalize(out.Category)
	out.Skin = normalize(out.Skin)
	out.Wear = normalize(out.Wear)
	return out
}

func (p Parser) parseGeneric(raw, name string, out *Name) {
	start, end, hasEnd := strings.Cut(name, " | ")
	if !hasEnd && strings.Contains(name, "|") {
		p.tel.ReportWarning(report_parser_parse, "missing ' | ' separator", raw)
		out.Partial = true
		start, end, hasEnd = strings.Cut(name, "|")
	}
	if hasEnd && strings.Contains(end, "|") {
		p.tel.ReportWarning(report_parser_parse, "more than one separator", raw)
		out.Partial = true
	}

	if strings.HasPrefix(strings.TrimSpace(start), "StatTrak") {
		out.StatTrak = true
		parts := strings.SplitN(start, " ", 3)
		out.Category = parts[len(parts)-1]
	} else {
		out.Category = strings.TrimSpace(start)
	}

	if !hasEnd || end == "" {
		return
	}
	skin, wear, found := strings.Cut(end, "(")
	if !found {
		p.tel.ReportWarning(report_parser_parse, "missing wear", raw)
		out.Partial = true
		out.Skin = end
		return
	}
	out.Skin = skin
	out.Wear = strings.ReplaceAll(wear, ")", "")
}
