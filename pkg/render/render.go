package render

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "txt"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatText}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if err := errors.ValidateFormat(f, Formats); err != nil {
			return err
		}
	}
	return nil
}

// Ext returns the file extension for format, including the dot.
func Ext(format string) string {
	if slices.Contains(Formats, format) {
		return "." + format
	}
	return ""
}

// JSON encodes v indented, the way every JSON artifact is written.
func JSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return append(data, '\n'), nil
}

// class maps an element kind to its CSS class and preview glyph.
func class(k layout.Kind) (string, byte) {
	switch k {
	case layout.KindOpening:
		return "opening", '#'
	case layout.KindRowMember:
		return "member", '='
	case layout.KindColumnMember:
		return "member", '|'
	case layout.KindBorderHorizontal, layout.KindBorderVertical:
		return "border", '+'
	case layout.KindSegment:
		return "segment", '@'
	}
	return "element", '*'
}
