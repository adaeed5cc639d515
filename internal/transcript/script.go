package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// RenderScript renders the transcript as an editable script: one
// tab-indented line of words per recognition result. Words come from the
// tokens rather than the result text, so every script word has a timestamp.
// Only the word order matters when the script is read back.
func RenderScript(t Transcript) string {
	var sb strings.Builder
	for _, r := range t.Results {
		if len(r.Words) == 0 {
			continue
		}
		sb.WriteString("\t")
		sb.WriteString(strings.Join(resultTexts(r), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func resultTexts(r Result) []string {
	texts := make([]string, len(r.Words))
	for i, w := range r.Words {
		texts[i] = w.Text
	}
	return texts
}

// WriteScript writes RenderScript output to path
func WriteScript(path string, t Transcript) error {
	if err := os.WriteFile(path, []byte(RenderScript(t)), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// ParseScript splits an edited script into words on any whitespace,
// ignoring line structure
func ParseScript(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return words, nil
}

// ReadScript reads and splits the edited script at path
func ReadScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}
