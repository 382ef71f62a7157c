package partyrock

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStream = "data: {\"type\":\"start\"}\n\n" +
	"data: {\"type\":\"text\",\"text\":\"Hel\"}\n\n" +
	"data: keep-alive\n\n" +
	": comment\n" +
	"data: {\"type\":\"text\",\"text\":\"lo, \\\"wörld\\\"\"}\r\n\r\n" +
	"event: message\n" +
	"data: {\"type\":\"ping\"}\n\n" +
	"data: {\"type\":\"text\",\"text\":\"\\n多字节\"}\n\n" +
	"data: [1,2,3]\n\n" +
	"data: {\"type\":\"text\",\"text\":\"!\"}"

func readAll(t *testing.T, r io.Reader) []string {
	er := NewEventReader(r)

	deltas := []string{}
	for er.Next() {
		deltas = append(deltas, er.Text())
	}

	require.Nil(t, er.Err())
	return deltas
}

func TestParseEvent(t *testing.T) {
	evt, ok := ParseEvent([]byte(`data: {"type":"text","text":"hi"}`))
	require.True(t, ok)
	assert.Equal(t, Event{Type: "text", Text: "hi"}, evt)

	evt, ok = ParseEvent([]byte("data: {\"type\":\"ping\"}\r\n"))
	require.True(t, ok)
	assert.Equal(t, Event{Type: "ping"}, evt)

	for _, line := range []string{
		"",
		"data:",
		"data: ",
		"data: [DONE]",
		"data: not json",
		`data: {"type":"text"`,
		`data: "text"`,
		`data:{"type":"text","text":"no space"}`,
		`event: {"type":"text","text":"x"}`,
		` data: {"type":"text","text":"x"}`,
	} {
		_, ok := ParseEvent([]byte(line))
		assert.False(t, ok, line)
	}
}

func TestEventReader(t *testing.T) {
	expected := []string{"Hel", "lo, \"wörld\"", "\n多字节", "!"}

	t.Run("when stream is delivered whole", func(t *testing.T) {
		assert.Equal(t, expected, readAll(t, strings.NewReader(sampleStream)))
	})

	t.Run("when stream is delivered one byte at a time", func(t *testing.T) {
		assert.Equal(t, expected, readAll(t, iotest.OneByteReader(strings.NewReader(sampleStream))))
	})

	t.Run("when stream is split at every offset", func(t *testing.T) {
		data := []byte(sampleStream)
		for i := 0; i <= len(data); i++ {
			r := io.MultiReader(bytes.NewReader(data[:i]), bytes.NewReader(data[i:]))
			assert.Equal(t, expected, readAll(t, r), "split at %d", i)
		}
	})

	t.Run("when a text event is split across two chunks", func(t *testing.T) {
		r := io.MultiReader(
			strings.NewReader(`data: {"type":"text","text":"Hel`),
			strings.NewReader("lo\"}\n\ndata: {\"type\":\"ping\"}\n\n"),
		)

		assert.Equal(t, []string{"Hello"}, readAll(t, r))
	})

	t.Run("when stream is empty", func(t *testing.T) {
		assert.Equal(t, []string{}, readAll(t, strings.NewReader("")))
	})

	t.Run("when stream has no text events", func(t *testing.T) {
		assert.Equal(t, []string{}, readAll(t, strings.NewReader("data: {\"type\":\"ping\"}\n\ndata: garbage\n\n")))
	})

	t.Run("when reading fails mid stream", func(t *testing.T) {
		boom := errors.New("connection reset")
		r := io.MultiReader(
			strings.NewReader("data: {\"type\":\"text\",\"text\":\"a\"}\n\ndata: {\"type\":\"text\",\"text\":\"b\"}"),
			iotest.ErrReader(boom),
		)

		er := NewEventReader(r)

		require.True(t, er.Next())
		assert.Equal(t, "a", er.Text())

		assert.False(t, er.Next())
		assert.Equal(t, "", er.Text())
		assert.Equal(t, boom, er.Err())

		assert.False(t, er.Next())
	})
}
