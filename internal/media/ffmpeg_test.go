package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/linuxmatters/jivecut/internal/processor"
)

func TestConcatFilter(t *testing.T) {
	plan := processor.KeepPlan{{Start: 0, Stop: 1.1}, {Start: 1.9, Stop: 3.1}}

	t.Run("video", func(t *testing.T) {
		want := "[0:v]trim=start=0.000000:end=1.100000,setpts=PTS-STARTPTS[v0];\n" +
			"[0:a]atrim=start=0.000000:end=1.100000,asetpts=PTS-STARTPTS[a0];\n" +
			"[0:v]trim=start=1.900000:end=3.100000,setpts=PTS-STARTPTS[v1];\n" +
			"[0:a]atrim=start=1.900000:end=3.100000,asetpts=PTS-STARTPTS[a1];\n" +
			"[v0][a0][v1][a1]concat=n=2:v=1:a=1[v][a]\n"
		if diff := cmp.Diff(want, ConcatFilter(plan, false)); diff != "" {
			t.Errorf("ConcatFilter() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("audio_only", func(t *testing.T) {
		want := "[0:a]atrim=start=0.000000:end=1.100000,asetpts=PTS-STARTPTS[a0];\n" +
			"[0:a]atrim=start=1.900000:end=3.100000,asetpts=PTS-STARTPTS[a1];\n" +
			"[a0][a1]concat=n=2:v=0:a=1[a]\n"
		if diff := cmp.Diff(want, ConcatFilter(plan, true)); diff != "" {
			t.Errorf("ConcatFilter() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		input      string
		wantEdited string
		wantFinal  string
	}{
		{"/media/talk.mov", "out/talk-edited.mp4", "out/final-talk.mov"},
		{"/media/talk.mp4", "out/talk-edited.mp4", "out/final-talk.mp4"},
		{"podcast.WAV", "out/podcast-edited.m4a", "out/final-podcast.m4a"},
		{"episode.flac", "out/episode-edited.m4a", "out/final-episode.m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EditedPath("out", tt.input); got != filepath.FromSlash(tt.wantEdited) {
				t.Errorf("EditedPath() = %q, want %q", got, tt.wantEdited)
			}
			if got := FinalPath("out", tt.input); got != filepath.FromSlash(tt.wantFinal) {
				t.Errorf("FinalPath() = %q, want %q", got, tt.wantFinal)
			}
		})
	}
}

func TestIsAudioOnly(t *testing.T) {
	for path, want := range map[string]bool{
		"a.wav": true, "a.MP3": true, "a.opus": true,
		"a.mp4": false, "a.mkv": false, "noext": false,
	} {
		if got := IsAudioOnly(path); got != want {
			t.Errorf("IsAudioOnly(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCutRejectsEmptyPlan(t *testing.T) {
	f := New("")
	if f.Binary != "ffmpeg" {
		t.Fatalf("New(\"\").Binary = %q, want ffmpeg", f.Binary)
	}
	plan := processor.KeepPlan{{Start: 0, Stop: 0}, {Start: 2, Stop: 2}}
	err := f.Cut(context.Background(), "in.mp4", "out.mp4", plan, CutOptions{})
	if !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("Cut() error = %v, want ErrEmptyPlan", err)
	}
}

// fakeBinary writes a shell script that records its arguments, one per
// line, to argsPath and then runs body
func fakeBinary(t *testing.T, body string) (binary, argsPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	dir := t.TempDir()
	argsPath = filepath.Join(dir, "args.txt")
	binary = filepath.Join(dir, "fake")
	script := "#!/bin/sh\nfor a in \"$@\"; do echo \"$a\" >> '" + argsPath + "'; done\n" + body + "\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	return binary, argsPath
}

func readArgs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestCutInvokesFFmpeg(t *testing.T) {
	binary, argsPath := fakeBinary(t, "exit 0")
	out := filepath.Join(t.TempDir(), "nested", "talk-edited.m4a")
	plan := processor.KeepPlan{{Start: 0, Stop: 0}, {Start: 1, Stop: 2}}

	err := New(binary).Cut(context.Background(), "talk.wav", out, plan, CutOptions{AudioCodec: "aac", AudioOnly: true})
	if err != nil {
		t.Fatalf("Cut() error: %v", err)
	}

	args := readArgs(t, argsPath)
	if len(args) < 2 || args[len(args)-1] != out {
		t.Fatalf("last argument = %v, want output path %q", args, out)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"-i talk.wav", "-filter_complex_script", "-map [a] -c:a aac"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if strings.Contains(joined, "[v]") {
		t.Errorf("audio-only cut mapped a video stream: %q", joined)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestRunReportsStderr(t *testing.T) {
	binary, _ := fakeBinary(t, "echo 'Invalid data found' >&2\nexit 1")
	_, err := New(binary).ExtractAudio(context.Background(), "in.mp4", t.TempDir(), 11000, 2)
	if err == nil || !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("ExtractAudio() error = %v, want stderr text", err)
	}
}
