// Package ipa turns text into IPA transcriptions by dictionary lookup.
// There is no pronunciation inference: a word either exists in the loaded
// dictionary or passes through unchanged.
package ipa

import (
	"strings"

	"github.com/lotusfa/ipa-api/internal/dict"
)

// maxPhraseLen bounds the longest-match search in Han-script text.
// The upstream dictionaries contain no phrase longer than six characters.
const maxPhraseLen = 6

// Options control the rendered output.
type Options struct {
	// ShowWordForm prefixes each transcription with the matched form,
	// e.g. "hello/həˈloʊ/" instead of "/həˈloʊ/".
	ShowWordForm bool
	Format       Format
}

// Result is a finished transcription with lookup counters.
type Result struct {
	IPA    string
	Tokens int
	Hits   int
	Misses int
}

// Translate transcribes input using the given dictionary. Han-script
// languages are walked character by character with greedy phrase matching;
// everything else is tokenized on whitespace.
func Translate(d *dict.Dict, input string, opts Options) Result {
	if d.Lang.HanScript {
		return translateHan(d, input, opts)
	}
	return translateLatin(d, input, opts)
}

func translateLatin(d *dict.Dict, input string, opts Options) Result {
	var res Result
	parts := make([]string, 0, 8)

	for _, word := range strings.Fields(input) {
		res.Tokens++
		key := preprocessLatin(word)
		ipa, ok := d.Lookup(key)
		if !ok {
			// No entry: keep the original token untouched.
			res.Misses++
			parts = append(parts, word)
			continue
		}
		res.Hits++
		if opts.ShowWordForm {
			parts = append(parts, key+"/"+ipa+"/")
		} else {
			parts = append(parts, "/"+ipa+"/")
		}
	}

	res.IPA = strings.Join(parts, " ")
	return res
}

func translateHan(d *dict.Dict, input string, opts Options) Result {
	var res Result
	var b strings.Builder
	runes := []rune(input)

	for i := 0; i < len(runes); {
		// Longest match first, down to a single character.
		matched := false
		for length := maxPhraseLen; length >= 1; length-- {
			if i+length > len(runes) {
				continue
			}
			cand := string(runes[i : i+length])
			ipa, ok := d.Lookup(cand)
			if !ok {
				continue
			}
			res.Tokens++
			res.Hits++
			if opts.ShowWordForm {
				b.WriteString(cand + "/" + ipa + "/")
			} else {
				b.WriteString("/" + ipa + "/")
			}
			i += length
			matched = true
			break
		}
		if matched {
			continue
		}

		// Unknown character: copy it verbatim. Whitespace and
		// punctuation land here too and are not counted as misses.
		r := runes[i]
		if !isSeparator(r) {
			res.Tokens++
			res.Misses++
		}
		b.WriteRune(r)
		i++
	}

	res.IPA = opts.Format.Apply(b.String())
	return res
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '.', '，', '。', '、', '！', '？', '!', '?', ';', '；', ':', '：':
		return true
	}
	return false
}

// preprocessLatin lowercases ASCII letters and strips the punctuation the
// dictionaries never key on: '.', ',' and newlines.
func preprocessLatin(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == '.' || r == ',' || r == '\n':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
