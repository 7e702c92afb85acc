// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TrafficDestination describes who a span talked to.
type TrafficDestination string

// Traffic destinations.
const (
	ToUser   TrafficDestination = "user"
	ToGemini TrafficDestination = "gemini"

	responseFilePermissions = 0o600
)

var (
	// SaveResponses stores outbound response bodies under ResponseDirectory.
	SaveResponses bool

	// ResponseDirectory is the directory where response bodies are saved.
	ResponseDirectory string
)

// Span is one HTTP exchange in flight.
type Span struct {
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	Error       error
	Body        []byte // saved, never logged

	// Attrs are extra string fields added to the log line, such as the
	// resolved locale and brand of a page request.
	Attrs map[string]string

	responseFilename string
}

// ServerTimingName is the metric name: destination, method and the
// base64url encoded URL joined by '$'.
func (span *Span) ServerTimingName() string {
	return string(span.Destination) + "$" + span.Method + "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
}

// Begin starts the span and returns a context carrying its trace task.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+string(span.Destination))

	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops the span clock. Calling End more than once has no effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()
	span.task = nil

	if span.metric != nil {
		span.metric.Duration = span.duration
	}
}

// Duration returns the measured duration; zero before End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span at debug level, or warn level when it carries an error.
func (span *Span) Log() {
	if span.Destination != ToUser && len(span.Body) > 0 && SaveResponses {
		span.saveBody()
	}

	var event *zerolog.Event
	if span.Error != nil {
		event = log.Warn().Err(span.Error)
	} else {
		event = log.Debug()
	}

	event.
		Str("sys", "http").
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(len(span.Body))).
		Dur("dur", span.duration).
		Str("destination", string(span.Destination)).
		Str("request_id", span.RequestID)

	for k, v := range span.Attrs {
		event.Str(k, v)
	}

	if span.responseFilename != "" {
		event.Str("response_filename", span.responseFilename)
	}

	event.Send()
}

func (span *Span) saveBody() {
	filename := filepath.Join(ResponseDirectory, span.RequestID)

	if err := os.WriteFile(filename, span.Body, responseFilePermissions); err != nil {
		log.Err(err).
			Str("request_id", span.RequestID).
			Msg("Failed to save response")

		return
	}

	span.responseFilename = filename
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	default:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}
}
