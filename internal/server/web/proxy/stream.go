package proxy

import (
	"encoding/json"
	"time"

	"github.com/bricks-cloud/partyrock/internal/provider/openai"
	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/bricks-cloud/partyrock/internal/telemetry/metricname"
	"github.com/bricks-cloud/partyrock/internal/util"
)

var (
	eventData = []byte("data: ")
	eventEnd  = []byte("\n\n")
	eventDone = []byte("data: [DONE]\n\n")
)

type streamState int

const (
	streamStateContent streamState = iota
	streamStateStop
	streamStateDone
	streamStateClosed
)

type deltaSource interface {
	Next() bool
	Text() string
	Err() error
}

// chunkStream turns text deltas into OpenAI chunk frames. Every call to Next pulls
// at most one delta from the source, and the frames always end with a stop chunk
// followed by the [DONE] sentinel.
type chunkStream struct {
	source  deltaSource
	model   string
	state   streamState
	deltas  int
	onError func(error)
}

func newChunkStream(source deltaSource, model string, onError func(error)) *chunkStream {
	return &chunkStream{
		source:  source,
		model:   model,
		onError: onError,
	}
}

func (cs *chunkStream) Next() ([]byte, bool) {
	switch cs.state {
	case streamStateContent:
		if cs.source.Next() {
			frame, err := frameEvent(openai.NewContentChunk(util.NewUuid(), cs.model, cs.source.Text(), time.Now().Unix()))
			if err == nil {
				telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_DELTAS, nil, 1)
				cs.deltas++
				return frame, true
			}

			cs.fail(err)
		} else if err := cs.source.Err(); err != nil {
			cs.fail(err)
		}

		cs.state = streamStateStop
		return cs.Next()

	case streamStateStop:
		cs.state = streamStateDone
		frame, err := frameEvent(openai.NewStopChunk(util.NewUuid(), cs.model, time.Now().Unix()))
		if err != nil {
			cs.fail(err)
			return cs.Next()
		}

		return frame, true

	case streamStateDone:
		cs.state = streamStateClosed
		return eventDone, true
	}

	return nil, false
}

// Deltas returns how many content frames were produced.
func (cs *chunkStream) Deltas() int {
	return cs.deltas
}

func (cs *chunkStream) fail(err error) {
	if cs.onError != nil {
		cs.onError(err)
	}
}

func frameEvent(v any) ([]byte, error) {
	bs, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return frameData(bs), nil
}

func frameData(payload []byte) []byte {
	frame := make([]byte, 0, len(eventData)+len(payload)+len(eventEnd))
	frame = append(frame, eventData...)
	frame = append(frame, payload...)
	frame = append(frame, eventEnd...)
	return frame
}
