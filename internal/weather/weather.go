// Package weather encodes weather refresh requests and decodes the
// companion's replies into the watchface's weather line.
package weather

import (
	"log/slog"

	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/textbuf"
)

// Dictionary keys shared with the companion application.
const (
	KeyTemperature uint32 = 0
	KeyConditions  uint32 = 1
)

// Buffer capacities for the assembled sample and the rendered line.
const (
	TemperatureCap = 8
	ConditionsCap  = 32
	LineCap        = 32
)

// RefreshRequest returns the outbound message asking the companion to send
// the current weather: a single marker tuple with no payload.
func RefreshRequest() appmsg.Dict {
	return appmsg.Dict{appmsg.Uint8(KeyTemperature, 0)}
}

// IsRefreshRequest reports whether d is the marker built by RefreshRequest.
func IsRefreshRequest(d appmsg.Dict) bool {
	if len(d) != 1 {
		return false
	}
	t := d[0]
	return t.Key == KeyTemperature && t.Type == appmsg.TypeUint && t.Int32() == 0
}

// Report is the watch-side weather sample. Each field keeps its last value
// until a message overwrites it, so a message carrying only one field is
// rendered against the other field's previous value.
type Report struct {
	Temperature *textbuf.Buffer
	Conditions  *textbuf.Buffer
	Line        *textbuf.Buffer

	logger *slog.Logger
}

// NewReport returns a report with empty fields.
func NewReport(logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.Default()
	}
	return &Report{
		Temperature: textbuf.New(TemperatureCap),
		Conditions:  textbuf.New(ConditionsCap),
		Line:        textbuf.New(LineCap),
		logger:      logger,
	}
}

// Apply decodes an inbound message in delivery order. Unknown keys are
// logged and skipped; the combined line is recomputed after every tuple.
// It reports whether the line was written at least once.
func (r *Report) Apply(d appmsg.Dict) bool {
	written := false
	for _, t := range d {
		switch t.Key {
		case KeyTemperature:
			r.Temperature.Printf("%d°", t.Int32())
		case KeyConditions:
			r.Conditions.Set(t.CString())
		default:
			r.logger.Error("key not recognized", "key", t.Key, "type", t.Type.String())
		}
		r.Line.Printf("%s, %s", r.Temperature.String(), r.Conditions.String())
		written = true
	}
	return written
}

// String returns the rendered weather line.
func (r *Report) String() string {
	return r.Line.String()
}

// Sample builds the inbound message a companion sends for the given values.
func Sample(temperature int32, conditions string) appmsg.Dict {
	return appmsg.Dict{
		appmsg.Int32(KeyTemperature, temperature),
		appmsg.CString(KeyConditions, conditions),
	}
}
