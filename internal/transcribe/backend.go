// Package transcribe wraps the speech-to-text service behind a small interface
package transcribe

import (
	"context"
	"fmt"

	"github.com/linuxmatters/jivecut/internal/transcript"
)

// Backend is a pluggable transcription backend. Returned word times are
// relative to the start of audioPath.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (transcript.Chunk, error)
}

// ChunkProgress is called after each chunk is transcribed
type ChunkProgress func(done, total int, chunk transcript.Chunk)

// All transcribes each chunk in order, one call at a time. Chunk order is
// preserved so Assemble can apply per-chunk offsets.
func All(ctx context.Context, be Backend, chunkPaths []string, progress ChunkProgress) ([]transcript.Chunk, error) {
	chunks := make([]transcript.Chunk, 0, len(chunkPaths))
	for i, path := range chunkPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := be.Transcribe(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("transcribe chunk %d (%s): %w", i, path, err)
		}
		chunks = append(chunks, c)
		if progress != nil {
			progress(i+1, len(chunkPaths), c)
		}
	}
	return chunks, nil
}
