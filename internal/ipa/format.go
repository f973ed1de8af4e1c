package ipa

import (
	"fmt"
	"strings"
)

// Format selects how tone marks are rendered in the output.
type Format string

const (
	// FormatOrg keeps the IPA tone letters as-is.
	FormatOrg Format = "org"
	// FormatNum replaces tone letters with numeric tones.
	FormatNum Format = "num"
	// FormatJyutping converts Cantonese tone contours to Jyutping numbers.
	FormatJyutping Format = "jyutping"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{string(FormatOrg), string(FormatNum), string(FormatJyutping)}
}

// ParseFormat normalizes a client-supplied format string.
// Empty means org; matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatOrg):
		return FormatOrg, nil
	case string(FormatNum):
		return FormatNum, nil
	case string(FormatJyutping):
		return FormatJyutping, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

var numReplacer = strings.NewReplacer(
	"˥", "5",
	"˧", "3",
	"˨", "2",
	"˩", "1",
	":", "",
)

// jyutpingRules are applied as sequential full-string passes. Order matters:
// tone contours and checked tones must be rewritten before the single tone
// letters swallow their components.
var jyutpingRules = [][2]string{
	{"˥˧", "1"}, {"˥˥", "1"},
	{"˧˥", "2"},
	{"˧˧", "3"},
	{"˨˩", "4"}, {"˩˩", "4"},
	{"˩˧", "5"}, {"˨˧", "5"},
	{"˨˨", "6"},
	{"k˥", "k7"}, {"k˧", "k8"}, {"k˨", "k9"},
	{"t˥", "t7"}, {"t˧", "t8"}, {"t˨", "t9"},
	{"p˥", "p7"}, {"p˧", "p8"}, {"p˨", "p9"},
	{"˥", "1"}, {"˧", "3"}, {"˨", "6"},
	{":", ""},
}

// Apply rewrites tone letters in a transcription according to the format.
func (f Format) Apply(s string) string {
	switch f {
	case FormatNum:
		return numReplacer.Replace(s)
	case FormatJyutping:
		for _, rule := range jyutpingRules {
			s = strings.ReplaceAll(s, rule[0], rule[1])
		}
		return s
	default:
		return s
	}
}
