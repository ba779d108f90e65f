package synth

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"shortwave/internal/broadcast"
	"shortwave/internal/config"
	"shortwave/internal/services"
)

var commandContext = exec.CommandContext

// morseLine matches a line consisting solely of dots, dashes, and spaces
// surrounded by newlines.
var morseLine = regexp.MustCompile(`\n([.\- ]+)\n`)

// Synthesizer renders broadcast messages to WAV files via external tools.
type Synthesizer struct {
	espeakBinary string
	soxBinary    string
	speechRate   int
	toneHz       int
	toneUnitMS   int
}

// New builds a Synthesizer from audio configuration.
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		espeakBinary: cfg.Audio.EspeakBinary,
		soxBinary:    cfg.Audio.SoxBinary,
		speechRate:   cfg.Audio.SpeechRate,
		toneHz:       cfg.Audio.ToneHz,
		toneUnitMS:   cfg.Audio.ToneUnitMS,
	}
}

// Synthesize writes the message audio to wavPath. Morse messages become tone
// sequences; everything else is spoken.
func (s *Synthesizer) Synthesize(ctx context.Context, msg broadcast.Message, wavPath string) error {
	var binary string
	var args []string
	if msg.Language == broadcast.LanguageMorse {
		code, err := ExtractMorse(msg.Text)
		if err != nil {
			return err
		}
		binary = s.soxBinary
		args = s.toneArgs(code, wavPath)
	} else {
		binary = s.espeakBinary
		args = []string{"-v", string(msg.Language), "-s", strconv.Itoa(s.speechRate), "-w", wavPath, msg.Text}
	}

	cmd := commandContext(ctx, binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrExternalTool, "synth", binary, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// ExtractMorse pulls the dot/dash line out of a morse message body.
func ExtractMorse(text string) (string, error) {
	match := morseLine.FindStringSubmatch(text)
	if match == nil {
		return "", services.Wrap(services.ErrMalformedMorse, "synth", "extract", "no morse code line in message", nil)
	}
	code := strings.TrimSpace(match[1])
	if code == "" {
		return "", services.Wrap(services.ErrMalformedMorse, "synth", "extract", "morse code line is empty", nil)
	}
	return code, nil
}

// toneArgs renders morse symbols as a sox synth chain. A dot is one unit of
// tone, a dash three units, a space six units of silence; one unit of
// silence follows every symbol except spaces.
func (s *Synthesizer) toneArgs(code string, wavPath string) []string {
	args := []string{"-n", wavPath}
	first := true
	emit := func(durationMS int, freq int) {
		if !first {
			args = append(args, ":")
		}
		first = false
		args = append(args, "synth", formatSeconds(durationMS), "sine", strconv.Itoa(freq))
	}

	for _, symbol := range code {
		switch symbol {
		case '.':
			emit(s.toneUnitMS, s.toneHz)
		case '-':
			emit(3*s.toneUnitMS, s.toneHz)
		case ' ':
			emit(6*s.toneUnitMS, 0)
		}
		if symbol != ' ' {
			emit(s.toneUnitMS, 0)
		}
	}
	return args
}

// formatSeconds renders a millisecond count as fractional seconds without
// floating point noise.
func formatSeconds(ms int) string {
	whole := ms / 1000
	frac := ms % 1000
	if frac == 0 {
		return strconv.Itoa(whole)
	}
	text := strconv.Itoa(whole) + "." + pad3(frac)
	return strings.TrimRight(text, "0")
}

func pad3(value int) string {
	text := strconv.Itoa(value)
	for len(text) < 3 {
		text = "0" + text
	}
	return text
}
