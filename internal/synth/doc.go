// Package synth turns a broadcast message into a WAV file.
//
// Spoken languages go through espeak with the message text verbatim. Morse
// messages never get spoken: the dot/dash line is extracted from the text
// and rendered as a sox tone chain with the standard 1:3 dot:dash ratio and
// inter-symbol silence.
package synth
