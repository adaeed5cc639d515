package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/jivecut/internal/transcript"
)

// OpenAI speech-to-text via audio.transcriptions with word timestamps
type openAIBackend struct {
	apiKey   string
	baseURL  string
	model    string
	language string
	client   *http.Client
}

// OpenAIOptions configures NewOpenAIBackend
type OpenAIOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Timeout  time.Duration
}

func NewOpenAIBackend(opts OpenAIOptions) Backend {
	return &openAIBackend{
		apiKey:   opts.APIKey,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		model:    opts.Model,
		language: opts.Language,
		client:   &http.Client{Timeout: opts.Timeout},
	}
}

type openAIWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type openAISegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type openAIResp struct {
	Text     string          `json:"text"`
	Segments []openAISegment `json:"segments"`
	Words    []openAIWord    `json:"words"`
}

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath string) (transcript.Chunk, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return transcript.Chunk{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"model", o.model},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "word"},
		{"timestamp_granularities[]", "segment"},
	}
	if o.language != "" {
		fields = append(fields, [2]string{"language", o.language})
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return transcript.Chunk{}, err
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return transcript.Chunk{}, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return transcript.Chunk{}, err
	}
	if err := mw.Close(); err != nil {
		return transcript.Chunk{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return transcript.Chunk{}, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return transcript.Chunk{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return transcript.Chunk{}, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(b))
	}

	var or openAIResp
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return transcript.Chunk{}, err
	}
	return chunkFromResponse(or), nil
}

// chunkFromResponse groups words under the last segment starting at or before
// them so each segment becomes one result line. Word order is preserved.
func chunkFromResponse(or openAIResp) transcript.Chunk {
	if len(or.Segments) == 0 {
		return transcript.Chunk{Results: []transcript.Result{{Text: strings.TrimSpace(or.Text), Words: toTokens(or.Words)}}}
	}

	results := make([]transcript.Result, len(or.Segments))
	for i, s := range or.Segments {
		results[i].Text = strings.TrimSpace(s.Text)
	}

	seg := 0
	for _, w := range toTokens(or.Words) {
		for seg < len(or.Segments)-1 && w.Start >= or.Segments[seg+1].Start {
			seg++
		}
		results[seg].Words = append(results[seg].Words, w)
	}
	return transcript.Chunk{Results: results}
}

func toTokens(words []openAIWord) []transcript.WordToken {
	tokens := make([]transcript.WordToken, len(words))
	for i, w := range words {
		tokens[i] = transcript.WordToken{Text: strings.TrimSpace(w.Word), Start: w.Start, End: w.End}
	}
	return tokens
}
