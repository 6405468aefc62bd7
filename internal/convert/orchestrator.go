// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/docshift/internal/extract"
	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/reflow"
	"github.com/pdiddy/docshift/internal/render"
	"github.com/pdiddy/docshift/pkg/types"
)

// State is the orchestrator's position in the conversion lifecycle.
type State int

const (
	// Idle means no direction has been chosen yet.
	Idle State = iota
	// Selecting means a direction is chosen and no file is held.
	Selecting
	// Ready means a file is held and a conversion may start.
	Ready
	// Converting means a conversion is in flight.
	Converting
	// Succeeded means the last attempt produced output.
	Succeeded
	// Failed means the last attempt ended with a failure.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Ready:
		return "ready"
	case Converting:
		return "converting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrBusy is returned for any transition requested while converting.
	// The request is rejected, not queued.
	ErrBusy = errors.New("a conversion is already in progress")

	// ErrNoDirection is returned when a file is selected before a direction.
	ErrNoDirection = errors.New("select a conversion direction first")

	// ErrNoFileSelected is returned by Start when no file is held. It is a
	// user input error: nothing is attempted and the state is unchanged.
	ErrNoFileSelected = errors.New("please select a file first")
)

// Snapshot is a read-only view of the orchestrator.
type Snapshot struct {
	State     State
	Direction format.Direction
	FileName  string
	Result    *types.ConversionResult
}

// Orchestrator drives one conversion at a time through the pipeline of the
// selected direction: extract the source text, reflow it when the target
// has fixed page geometry, and write the target container. All state
// changes go through the transition methods, which are safe for concurrent
// use; the pipeline itself runs on the goroutine that calls Start.
type Orchestrator struct {
	extractor *extract.Extractor
	writers   map[format.Format]render.Writer

	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	state     State
	direction format.Direction
	file      *types.SourceDocument
	result    *types.ConversionResult
}

// NewOrchestrator returns an idle orchestrator. Writers are keyed by the
// format they produce; a direction whose target has no writer fails at
// Start.
func NewOrchestrator(ex *extract.Extractor, writers ...render.Writer) *Orchestrator {
	o := &Orchestrator{
		extractor: ex,
		writers:   make(map[format.Format]render.Writer, len(writers)),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, w := range writers {
		o.writers[w.Format()] = w
	}
	return o
}

// SelectDirection chooses the conversion mode. Any held file and result are
// discarded.
func (o *Orchestrator) SelectDirection(d format.Direction) error {
	if _, err := format.ParseDirection(string(d)); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Converting {
		return ErrBusy
	}
	o.direction = d
	o.file = nil
	o.result = nil
	o.state = Selecting
	return nil
}

// SelectFile holds doc for the next Start, replacing any earlier file and
// clearing the last result. Only presence is checked here; the format is
// validated when the conversion runs.
func (o *Orchestrator) SelectFile(doc types.SourceDocument) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case Idle:
		return ErrNoDirection
	case Converting:
		return ErrBusy
	}
	o.file = &doc
	o.result = nil
	o.state = Ready
	return nil
}

// Reset returns to Selecting with the same direction, dropping the held
// file and result.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case Converting:
		return ErrBusy
	case Idle, Selecting:
		return nil
	}
	o.file = nil
	o.result = nil
	o.state = Selecting
	return nil
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Snapshot{State: o.state, Direction: o.direction, Result: o.result}
	if o.file != nil {
		s.FileName = o.file.Name
	}
	return s
}

// Start runs one conversion attempt on the held file and blocks until it
// completes. A finished attempt, successful or not, is reported through the
// returned result; the error is reserved for rejected requests (ErrBusy,
// ErrNoFileSelected). Starting again from Succeeded or Failed is a new
// attempt with the same file. ctx is checked between source pages.
func (o *Orchestrator) Start(ctx context.Context) (*types.ConversionResult, error) {
	o.mu.Lock()
	if o.state == Converting {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	if o.file == nil {
		o.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	doc := *o.file
	d := o.direction
	o.state = Converting
	o.result = nil
	o.mu.Unlock()

	res := o.attempt(ctx, d, doc)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.result = res
	if res.Succeeded() {
		o.state = Succeeded
	} else {
		o.state = Failed
	}
	return res, nil
}

func (o *Orchestrator) attempt(ctx context.Context, d format.Direction, doc types.SourceDocument) *types.ConversionResult {
	res := &types.ConversionResult{
		ID:         o.newID(),
		Direction:  d,
		SourceName: doc.Name,
		StartedAt:  o.now().UTC(),
	}

	out, err := o.run(ctx, d, doc)
	res.Duration = o.now().UTC().Sub(res.StartedAt)
	if err != nil {
		res.Failure = &types.Failure{
			Kind:    failureKind(err),
			Message: fmt.Sprintf("failed to convert %s: %v", d.Label(), err),
		}
		return res
	}
	res.Output = out
	res.FileName = format.OutputName(doc.Name, d)
	return res
}

// run is the direction's pipeline. Nothing is returned unless every stage
// succeeds.
func (o *Orchestrator) run(ctx context.Context, d format.Direction, doc types.SourceDocument) ([]byte, error) {
	src := sourceFormat(doc)
	if !d.Accepts(src) {
		return nil, &extract.Error{
			Kind:   extract.UnsupportedFormat,
			Format: src,
			Err:    fmt.Errorf("%s conversion needs a %s", d, d.Label()),
		}
	}

	w, ok := o.writers[d.Target()]
	if !ok {
		return nil, fmt.Errorf("no writer registered for %s", d.Target())
	}

	text, err := o.extractor.Extract(ctx, doc.Data, src)
	if err != nil {
		return nil, err
	}

	var pages []reflow.Page
	if pw, ok := w.(render.PaginatedWriter); ok {
		pages, err = reflow.Reflow(text, pw.Geometry(), pw.Measure)
		if err != nil {
			return nil, &render.Error{Kind: render.InvalidGeometry, Format: w.Format(), Err: err}
		}
	} else {
		pages = reflow.Unwrapped(text)
	}

	return w.Write(pages)
}

// sourceFormat prefers the content signature and falls back to the
// declared format, then the file extension.
func sourceFormat(doc types.SourceDocument) format.Format {
	if f := format.DetectFromMagic(doc.Data); f != format.Unknown {
		return f
	}
	if doc.Format != format.Unknown {
		return doc.Format
	}
	return format.Detect(doc.Name)
}

func failureKind(err error) types.FailureKind {
	var xerr *extract.Error
	if errors.As(err, &xerr) {
		switch xerr.Kind {
		case extract.UnsupportedFormat:
			return types.FailureUnsupportedFormat
		case extract.PageReadFailure:
			return types.FailurePageRead
		}
	}
	var rerr *render.Error
	if errors.As(err, &rerr) {
		switch rerr.Kind {
		case render.InvalidGeometry:
			return types.FailureInvalidGeometry
		case render.EncodingFailure:
			return types.FailureEncoding
		}
	}
	if errors.Is(err, reflow.ErrInvalidGeometry) {
		return types.FailureInvalidGeometry
	}
	if errors.Is(err, ErrNoFileSelected) {
		return types.FailureNoFileSelected
	}
	return types.FailureInternal
}
