package partyrock

import (
	"bufio"
	"bytes"
	"io"

	"github.com/tidwall/gjson"
)

const EventTypeText = "text"

var headerData = []byte("data: ")

// Event is one JSON payload carried by a "data: " line of a PartyRock stream.
type Event struct {
	Type string
	Text string
}

// ParseEvent parses a single stream line. It reports false for lines that are not
// "data: " lines or whose payload is not a JSON object.
func ParseEvent(line []byte) (Event, bool) {
	line = bytes.TrimSuffix(bytes.TrimSuffix(line, []byte("\n")), []byte("\r"))
	if !bytes.HasPrefix(line, headerData) {
		return Event{}, false
	}

	payload := bytes.TrimPrefix(line, headerData)
	if !gjson.ValidBytes(payload) {
		return Event{}, false
	}

	parsed := gjson.ParseBytes(payload)
	if !parsed.IsObject() {
		return Event{}, false
	}

	return Event{
		Type: parsed.Get("type").String(),
		Text: parsed.Get("text").String(),
	}, true
}

// EventReader extracts text deltas from a PartyRock event stream. Lines may be split
// across reads of the underlying reader in any way. Usage mirrors bufio.Scanner:
//
//	er := NewEventReader(body)
//	for er.Next() {
//		fmt.Print(er.Text())
//	}
//	if err := er.Err(); err != nil { ... }
type EventReader struct {
	buffer *bufio.Reader
	text   string
	err    error
	done   bool
}

func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{
		buffer: bufio.NewReader(r),
	}
}

// Next advances to the next text delta. It returns false once the stream is
// exhausted or a read fails.
func (er *EventReader) Next() bool {
	for !er.done {
		raw, err := er.buffer.ReadBytes('\n')
		if err != nil {
			er.done = true
			if err != io.EOF {
				er.err = err
				break
			}
		}

		evt, ok := ParseEvent(raw)
		if ok && evt.Type == EventTypeText {
			er.text = evt.Text
			return true
		}
	}

	er.text = ""
	return false
}

// Text returns the delta produced by the last call to Next.
func (er *EventReader) Text() string {
	return er.text
}

// Err returns the first non-EOF read error.
func (er *EventReader) Err() error {
	return er.err
}
