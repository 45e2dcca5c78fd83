package trace

import (
	"time"
)

// Event is one pipeline event of a run.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies the run (UUID); constant across all
	// events of one invocation.
	RunID string `cbor:"2,keyasint"`

	// Stage of the pipeline that produced the event.
	Stage Stage `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// URL of the catalog request (fetch stage).
	URL string `cbor:"5,keyasint,omitempty"`

	// Path of a local input or output file (parse/save stages).
	Path string `cbor:"6,keyasint,omitempty"`

	// Status is the HTTP status code of a catalog response.
	Status int `cbor:"7,keyasint,omitempty"`

	// KeyCount is the number of mapping entries produced (build stage).
	KeyCount int `cbor:"8,keyasint,omitempty"`

	// Elapsed is the stage duration.
	Elapsed time.Duration `cbor:"9,keyasint,omitempty"`

	// Error holds the failure message for CategoryError events.
	Error string `cbor:"10,keyasint,omitempty"`
}

// Stage identifies the pipeline stage that produced an event.
type Stage uint8

const (
	// StageFetch covers the catalog HTTP request.
	StageFetch Stage = 0
	// StageParse covers local file reading and JSON decoding.
	StageParse Stage = 1
	// StageBuild covers mapping construction.
	StageBuild Stage = 2
	// StageSave covers output file writing.
	StageSave Stage = 3
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "FETCH"
	case StageParse:
		return "PARSE"
	case StageBuild:
		return "BUILD"
	case StageSave:
		return "SAVE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRequest indicates the start of a stage.
	CategoryRequest Category = 0
	// CategoryResult indicates a completed stage.
	CategoryResult Category = 1
	// CategoryError indicates a stage failure.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRequest:
		return "REQUEST"
	case CategoryResult:
		return "RESULT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
