package proxy

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bricks-cloud/partyrock/internal/provider/openai"
	"github.com/bricks-cloud/partyrock/internal/provider/partyrock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	deltas []string
	pos    int
	err    error
}

func (s *sliceSource) Next() bool {
	if s.pos >= len(s.deltas) {
		return false
	}

	s.pos++
	return true
}

func (s *sliceSource) Text() string {
	return s.deltas[s.pos-1]
}

func (s *sliceSource) Err() error {
	if s.pos >= len(s.deltas) {
		return s.err
	}

	return nil
}

func drainFrames(t *testing.T, cs *chunkStream) []string {
	frames := []string{}
	for i := 0; i < 100; i++ {
		frame, ok := cs.Next()
		if !ok {
			return frames
		}

		frames = append(frames, string(frame))
	}

	t.Fatal("chunk stream did not terminate")
	return nil
}

func decodeChunk(t *testing.T, frame string) *openai.ChatCompletionChunk {
	require.True(t, strings.HasPrefix(frame, "data: "))
	require.True(t, strings.HasSuffix(frame, "\n\n"))

	chunk := &openai.ChatCompletionChunk{}
	err := json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(frame, "data: "), "\n\n")), chunk)
	require.Nil(t, err)

	return chunk
}

func TestChunkStream(t *testing.T) {
	t.Run("when there are no deltas", func(t *testing.T) {
		cs := newChunkStream(&sliceSource{}, "claude-3-5-haiku", nil)
		frames := drainFrames(t, cs)

		require.Len(t, frames, 2)
		stop := decodeChunk(t, frames[0])
		require.Len(t, stop.Choices, 1)
		require.NotNil(t, stop.Choices[0].FinishReason)
		assert.Equal(t, "stop", *stop.Choices[0].FinishReason)
		assert.Equal(t, "", stop.Choices[0].Delta.Content)
		assert.Equal(t, "data: [DONE]\n\n", frames[1])
		assert.Equal(t, 0, cs.Deltas())
	})

	t.Run("when there are several deltas", func(t *testing.T) {
		deltas := []string{"Hel", "lo", " world"}
		cs := newChunkStream(&sliceSource{deltas: deltas}, "nova-pro-v1-0", nil)
		frames := drainFrames(t, cs)

		require.Len(t, frames, len(deltas)+2)

		ids := map[string]bool{}
		for i, d := range deltas {
			chunk := decodeChunk(t, frames[i])
			assert.Equal(t, "chat.completion.chunk", chunk.Object)
			assert.Equal(t, "nova-pro-v1-0", chunk.Model)
			require.Len(t, chunk.Choices, 1)
			assert.Equal(t, d, chunk.Choices[0].Delta.Content)
			assert.Nil(t, chunk.Choices[0].FinishReason)
			assert.Equal(t, 0, chunk.Choices[0].Index)
			ids[chunk.Id] = true
		}

		assert.Len(t, ids, len(deltas))

		stop := decodeChunk(t, frames[len(deltas)])
		require.NotNil(t, stop.Choices[0].FinishReason)
		assert.Equal(t, "stop", *stop.Choices[0].FinishReason)
		assert.Equal(t, "data: [DONE]\n\n", frames[len(frames)-1])
		assert.Equal(t, len(deltas), cs.Deltas())
	})

	t.Run("when content chunks carry null finish reasons", func(t *testing.T) {
		cs := newChunkStream(&sliceSource{deltas: []string{""}}, "claude-3-5-haiku", nil)
		frame, ok := cs.Next()
		require.True(t, ok)

		assert.Contains(t, string(frame), `"finish_reason":null`)
		assert.Contains(t, string(frame), `"delta":{"content":""}`)
	})

	t.Run("when the source fails mid stream", func(t *testing.T) {
		readErr := errors.New("connection reset")
		var reported error

		cs := newChunkStream(&sliceSource{deltas: []string{"partial"}, err: readErr}, "claude-3-5-haiku", func(err error) {
			reported = err
		})
		frames := drainFrames(t, cs)

		require.Len(t, frames, 3)
		assert.Equal(t, "partial", decodeChunk(t, frames[0]).Choices[0].Delta.Content)
		assert.Equal(t, "stop", *decodeChunk(t, frames[1]).Choices[0].FinishReason)
		assert.Equal(t, "data: [DONE]\n\n", frames[2])
		assert.Equal(t, readErr, reported)
	})

	t.Run("when the stream is exhausted", func(t *testing.T) {
		cs := newChunkStream(&sliceSource{}, "claude-3-5-haiku", nil)
		drainFrames(t, cs)

		frame, ok := cs.Next()
		assert.False(t, ok)
		assert.Nil(t, frame)
	})

	t.Run("when fed by a partyrock event reader", func(t *testing.T) {
		body := "data: {\"type\":\"text\",\"text\":\"Hel\"}\ndata: {\"type\":\"text\",\"text\":\"lo\"}\n"
		cs := newChunkStream(partyrock.NewEventReader(strings.NewReader(body)), "claude-3-5-haiku", nil)
		frames := drainFrames(t, cs)

		require.Len(t, frames, 4)
		assert.Equal(t, "Hel", decodeChunk(t, frames[0]).Choices[0].Delta.Content)
		assert.Equal(t, "lo", decodeChunk(t, frames[1]).Choices[0].Delta.Content)
	})
}
