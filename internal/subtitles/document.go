package subtitles

import (
	"fmt"
	"strings"

	"shortreel/internal/services"
	"shortreel/internal/timeline"
)

// Style describes the single V4+ style every cue uses. Colours are ASS
// &HAABBGGRR strings.
type Style struct {
	Name          string
	FontName      string
	FontSize      int
	PrimaryColour string
	OutlineColour string
	BackColour    string
	Bold          bool
	Outline       int
	Shadow        int
	Alignment     int
	MarginL       int
	MarginR       int
	MarginV       int
}

// DefaultStyle returns the burned-caption style used for vertical video:
// white text with a black outline, bottom-centered.
func DefaultStyle(fontName string, fontSize int) Style {
	if strings.TrimSpace(fontName) == "" {
		fontName = "Arial"
	}
	if fontSize <= 0 {
		fontSize = 96
	}
	return Style{
		Name:          "Default",
		FontName:      fontName,
		FontSize:      fontSize,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00000000",
		BackColour:    "&H80000000",
		Bold:          true,
		Outline:       4,
		Shadow:        0,
		Alignment:     2,
		MarginL:       60,
		MarginR:       60,
		MarginV:       240,
	}
}

// Document is an in-memory ASS subtitle track.
type Document struct {
	Title    string
	PlayResX int
	PlayResY int
	Style    Style
	Cues     []timeline.Cue
}

// NewDocument creates an empty document for the given playback resolution.
func NewDocument(title string, width, height int, style Style) *Document {
	return &Document{
		Title:    title,
		PlayResX: width,
		PlayResY: height,
		Style:    style,
	}
}

// AddCues appends cues to the document in order.
func (d *Document) AddCues(cues ...timeline.Cue) {
	d.Cues = append(d.Cues, cues...)
}

// Render serializes the document. It defensively rejects cue sequences that
// are not monotonically ordered; the timeline builder guarantees ordering, so
// a failure here indicates a caller bug.
func (d *Document) Render() (string, error) {
	for i, cue := range d.Cues {
		if cue.End <= cue.Start {
			return "", services.Wrap(services.ErrInvalidInput, "subtitles", "render",
				fmt.Sprintf("cue %d ends at or before its start (%.3f <= %.3f)", i, cue.End, cue.Start), nil)
		}
		if i > 0 && cue.Start < d.Cues[i-1].End {
			return "", services.Wrap(services.ErrInvalidInput, "subtitles", "render",
				fmt.Sprintf("cue %d overlaps cue %d", i, i-1), nil)
		}
	}

	var b strings.Builder
	b.Grow(512 + len(d.Cues)*64)

	b.WriteString("[Script Info]\n")
	fmt.Fprintf(&b, "Title: %s\n", sanitizeText(d.Title))
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", d.PlayResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", d.PlayResY)
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("ScaledBorderAndShadow: yes\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: %s,%s,%d,%s,&H000000FF,%s,%s,%d,0,0,0,100,100,0,0,1,%d,%d,%d,%d,%d,%d,1\n\n",
		d.Style.Name,
		d.Style.FontName,
		d.Style.FontSize,
		d.Style.PrimaryColour,
		d.Style.OutlineColour,
		d.Style.BackColour,
		assBool(d.Style.Bold),
		d.Style.Outline,
		d.Style.Shadow,
		d.Style.Alignment,
		d.Style.MarginL,
		d.Style.MarginR,
		d.Style.MarginV,
	)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, cue := range d.Cues {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			FormatTimestamp(cue.Start),
			FormatTimestamp(cue.End),
			d.Style.Name,
			sanitizeText(cue.Text),
		)
	}

	return b.String(), nil
}

func assBool(v bool) int {
	if v {
		return -1
	}
	return 0
}

// sanitizeText strips characters that would break ASS parsing: newlines
// become soft breaks and override braces are removed.
func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\\N")
	text = strings.ReplaceAll(text, "\n", "\\N")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	return text
}
