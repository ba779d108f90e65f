package broadcast

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

// Messages under this length get a second interference block appended. Soft
// budget, not a cap.
const interferenceBudget = 295

// Generator produces broadcast messages from a vocabulary. All random
// selection flows through a single source so a seeded generator replays the
// same broadcast.
type Generator struct {
	vocab *Vocabulary
	rng   *rand.Rand
	now   func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand overrides the random source. Pass a seeded source for
// deterministic output.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithClock overrides the time source used for the broadcast timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator constructs a Generator over the given vocabulary. A nil
// vocabulary selects the default tables.
func NewGenerator(vocab *Vocabulary, opts ...Option) *Generator {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	g := &Generator{
		vocab: vocab,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate assembles one complete broadcast message.
func (g *Generator) Generate() Message {
	frequency := g.vocab.Frequencies[g.rng.Intn(len(g.vocab.Frequencies))]
	interference := g.Interference()

	header := []string{
		interference + "\n",
		fmt.Sprintf("FREQUENCY: %dkHz", frequency),
		"TIME: " + g.Timestamp(),
		"STATION: " + g.StationID(),
		"",
	}

	phonetic := g.PhoneticMessage()
	numeric := g.NumericMessage()
	candidates := []Message{
		phonetic,
		numeric,
		g.MorseMessage(),
		{Text: reverseJoin(phonetic.Text, "\n"), Language: phonetic.Language},
		{Text: reverseJoin(numeric.Text, groupSeparator), Language: numeric.Language},
	}
	selected := candidates[g.rng.Intn(len(candidates))]

	draft := strings.Join(append(header, selected.Text), "\n")
	if utf8.RuneCountInString(draft)+utf8.RuneCountInString(interference) < interferenceBudget {
		draft += "\n\n" + g.Interference()
	}

	return Message{Text: draft, Language: selected.Language}
}

// PhoneticMessage picks a pattern and a phonetic system independently at
// random and renders one group of code words per pattern entry.
func (g *Generator) PhoneticMessage() Message {
	pattern := g.vocab.Patterns[g.rng.Intn(len(g.vocab.Patterns))]
	system := g.vocab.PhoneticSystems[g.rng.Intn(len(g.vocab.PhoneticSystems))]
	return Message{
		Text:     g.PhoneticPayload(pattern, system),
		Language: system.Language,
	}
}

// PhoneticPayload renders the pattern's digit groups through the given
// system, one newline-separated group per pattern entry.
func (g *Generator) PhoneticPayload(pattern Pattern, system PhoneticSystem) string {
	groups := make([]string, 0, len(pattern.Groups))
	for _, length := range pattern.Groups {
		words := make([]string, 0, length)
		for i := 0; i < length; i++ {
			words = append(words, system.Digits[g.rng.Intn(10)])
		}
		groups = append(groups, strings.Join(words, " "))
	}
	return strings.Join(groups, "\n")
}

const groupSeparator = " – "

// NumericMessage renders a plain digit-group payload using one of the fixed
// grouping shapes. Tagged English because the digits are spoken in English.
func (g *Generator) NumericMessage() Message {
	shape := g.vocab.NumericShapes[g.rng.Intn(len(g.vocab.NumericShapes))]
	return Message{Text: g.NumericPayload(shape), Language: LanguageEnglish}
}

// NumericPayload renders one digit group per shape entry, repeating each
// group two or three times in the style of real numbered broadcasts, and
// usually closes with an all-zero group.
func (g *Generator) NumericPayload(shape []int) string {
	groups := make([]string, 0, len(shape)+1)
	for _, length := range shape {
		group := g.digits(length)
		times := 2
		if g.rng.Float64() >= 0.5 {
			times = 3
		}
		repeated := make([]string, times)
		for i := range repeated {
			repeated[i] = group
		}
		groups = append(groups, strings.Join(repeated, " "))
	}

	output := strings.Join(groups, groupSeparator)
	if g.rng.Float64() < 0.75 {
		output += groupSeparator + "000 00"
		if g.rng.Float64() < 0.5 {
			output += "0"
		}
	}
	return output
}

// MorseMessage renders a templated word sentence as morse code.
func (g *Generator) MorseMessage() Message {
	return Message{Text: g.vocab.ToMorse(g.MorseSentence()), Language: LanguageMorse}
}

// MorseSentence draws one word per category slot of a random sentence
// template.
func (g *Generator) MorseSentence() string {
	template := g.vocab.Templates[g.rng.Intn(len(g.vocab.Templates))]
	words := make([]string, 0, len(template))
	for _, category := range template {
		pool := g.vocab.Words[category]
		words = append(words, pool[g.rng.Intn(len(pool))])
	}
	return strings.Join(words, " ")
}

// StationID returns "<prefix>-<NNN>-<suffix>" with a zero-padded 0-998
// number.
func (g *Generator) StationID() string {
	prefix := g.vocab.Prefixes[g.rng.Intn(len(g.vocab.Prefixes))]
	suffix := g.vocab.Suffixes[g.rng.Intn(len(g.vocab.Suffixes))]
	return fmt.Sprintf("%s-%03d-%s", prefix, g.rng.Intn(999), suffix)
}

// Timestamp returns the current UTC time as HHMMZ.
func (g *Generator) Timestamp() string {
	return g.now().UTC().Format("1504") + "Z"
}

// Interference returns 2-5 repetitions of "/" each followed by 0-4 copies of
// the asterism motif. Cosmetic noise, independent of language.
func (g *Generator) Interference() string {
	var builder strings.Builder
	count := 2 + g.rng.Intn(4)
	for i := 0; i < count; i++ {
		builder.WriteString("/")
		builder.WriteString(strings.Repeat("⁂ » ", g.rng.Intn(5)))
	}
	return builder.String()
}

// Markers returns three beta-marker bursts sized by a random interval.
func (g *Generator) Markers() string {
	count := g.vocab.Intervals[g.rng.Intn(len(g.vocab.Intervals))]
	burst := strings.Repeat("β", count%7)
	return strings.Join([]string{burst, burst, burst}, " ")
}

func (g *Generator) digits(length int) string {
	var builder strings.Builder
	for i := 0; i < length; i++ {
		builder.WriteByte(byte('0' + g.rng.Intn(10)))
	}
	return builder.String()
}

func reverseJoin(text, separator string) string {
	parts := strings.Split(text, separator)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, separator)
}
