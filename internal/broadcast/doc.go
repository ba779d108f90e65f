// Package broadcast generates pseudo numbers-station transmissions.
//
// A Vocabulary holds the static tables (frequencies, phonetic systems,
// station-id fragments, digit patterns, the morse table, and the word bank)
// and a Generator combines random selections from them into a single
// Message. All randomness flows through one injectable source so runs can be
// replayed deterministically.
package broadcast
