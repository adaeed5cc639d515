// Package transcript holds word-level transcripts and reconstructs keep
// intervals from a user's word-deleted edit of one.
package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPunctuation is stripped from both ends of every word before
// comparison. The recogniser appends it; user edits never add it.
const DefaultPunctuation = ".!-,"

// WordToken is one recognised word with absolute start and end times in seconds
type WordToken struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is one recognition result: the punctuated text the service
// returned for a stretch of audio plus its words
type Result struct {
	Text  string      `json:"text"`
	Words []WordToken `json:"words"`
}

// Transcript is the full machine transcript of a track in time order
type Transcript struct {
	Results []Result `json:"results"`
}

// Words returns every token of the transcript in order
func (t Transcript) Words() []WordToken {
	var n int
	for _, r := range t.Results {
		n += len(r.Words)
	}
	words := make([]WordToken, 0, n)
	for _, r := range t.Results {
		words = append(words, r.Words...)
	}
	return words
}

// Texts returns the word texts of the transcript in order
func (t Transcript) Texts() []string {
	words := t.Words()
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}

// Chunk is the recogniser output for one fixed-length slice of audio, with
// times relative to the slice start
type Chunk struct {
	Results []Result
}

// Assemble builds a transcript from sequential chunks. Chunk i is shifted by
// i*chunkSeconds and each word is stripped of punctuation. Result text is
// kept verbatim.
func Assemble(chunks []Chunk, chunkSeconds float64, punctuation string) Transcript {
	var t Transcript
	for i, c := range chunks {
		offset := float64(i) * chunkSeconds
		for _, r := range c.Results {
			shifted := Result{Text: strings.TrimSpace(r.Text), Words: make([]WordToken, 0, len(r.Words))}
			for _, w := range r.Words {
				text := StripPunctuation(w.Text, punctuation)
				if text == "" {
					// A bare punctuation token can never appear in an edit
					continue
				}
				shifted.Words = append(shifted.Words, WordToken{
					Text:  text,
					Start: w.Start + offset,
					End:   w.End + offset,
				})
			}
			t.Results = append(t.Results, shifted)
		}
	}
	return t
}

// StripPunctuation trims every rune in punctuation from both ends of word
func StripPunctuation(word, punctuation string) string {
	return strings.Trim(word, punctuation)
}

// Save writes the transcript as indented JSON
func Save(path string, t Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Load reads a transcript written by Save
func Load(path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON transcript from r
func Decode(r io.Reader) (Transcript, error) {
	var t Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	return t, nil
}
