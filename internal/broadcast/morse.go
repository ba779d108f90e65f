package broadcast

import "strings"

// ToMorse converts text to space-delimited morse tokens, one token per
// source character. Characters without a table entry pass through unchanged,
// so a source space becomes its own token and words end up separated by
// three spaces.
func (v *Vocabulary) ToMorse(text string) string {
	upper := strings.ToUpper(text)
	tokens := make([]string, 0, len(upper))
	for _, r := range upper {
		if code, ok := v.MorseCode[r]; ok {
			tokens = append(tokens, code)
		} else {
			tokens = append(tokens, string(r))
		}
	}
	return strings.Join(tokens, " ")
}

// DecodeMorse inverts ToMorse using the fixed table. Word boundaries are the
// triple spaces the encoder produces; tokens without an inverse are kept
// verbatim.
func (v *Vocabulary) DecodeMorse(code string) string {
	inverse := make(map[string]rune, len(v.MorseCode))
	for r, c := range v.MorseCode {
		inverse[c] = r
	}

	words := strings.Split(code, "   ")
	decoded := make([]string, 0, len(words))
	for _, word := range words {
		var builder strings.Builder
		for _, token := range strings.Split(strings.TrimSpace(word), " ") {
			if token == "" {
				continue
			}
			if r, ok := inverse[token]; ok {
				builder.WriteRune(r)
			} else {
				builder.WriteString(token)
			}
		}
		decoded = append(decoded, builder.String())
	}
	return strings.Join(decoded, " ")
}
