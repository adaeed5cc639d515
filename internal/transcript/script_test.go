package transcript

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderScript(t *testing.T) {
	tr := Transcript{Results: []Result{
		{Text: "Hi there.", Words: []WordToken{{Text: "Hi"}, {Text: "there"}}},
		{Text: "", Words: nil},
		{Text: "Bye.", Words: []WordToken{{Text: "Bye"}}},
	}}
	want := "\tHi there\n\tBye\n"
	if got := RenderScript(tr); got != want {
		t.Errorf("RenderScript() = %q, want %q", got, want)
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"tabs_and_lines", "\tHi there\n\tBye\n", []string{"Hi", "there", "Bye"}},
		{"joined_lines", "\tHi Bye\n", []string{"Hi", "Bye"}},
		{"extra_whitespace", "  a   b\r\n\n\tc ", []string{"a", "b", "c"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScript(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseScript() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseScript() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// An untouched script aligns back to the whole transcript
func TestScriptRoundTripAligns(t *testing.T) {
	tr := Transcript{Results: []Result{
		{Words: []WordToken{{Text: "a", Start: 0, End: 1}, {Text: "b", Start: 1, End: 2}}},
		{Words: []WordToken{{Text: "c", Start: 2, End: 3}}},
	}}
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := WriteScript(path, tr); err != nil {
		t.Fatalf("WriteScript() error: %v", err)
	}

	edited, err := ReadScript(path)
	if err != nil {
		t.Fatalf("ReadScript() error: %v", err)
	}
	if diff := cmp.Diff(tr.Texts(), edited); diff != "" {
		t.Fatalf("ReadScript() mismatch (-want +got):\n%s", diff)
	}

	got, err := Align(tr.Words(), edited, DefaultBuffer, DefaultPunctuation)
	if err != nil {
		t.Fatalf("Align() error: %v", err)
	}
	if got.Deleted != 0 || len(got.Plan) != 1 || got.Plan[0].Stop != 3 {
		t.Errorf("Align() = %+v, want one run to 3s with nothing deleted", got)
	}
}
