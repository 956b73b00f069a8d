package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slipcheck/slipcheck/internal/extraction"
)

// State is the workflow status surfaced to the page banner.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// ErrBusy rejects a submission that arrives while another is in flight.
// Requests are rejected outright rather than queued; cancellation is
// not supported, so the slot frees only on the in-flight request's
// terminal outcome.
var ErrBusy = errors.New("a submission is already being processed")

// IDGenerator generates unique IDs for log entries
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Outcome is the terminal result of one successful submission: the
// transient result rows and the log entry that was appended.
type Outcome struct {
	Result []RenderedField `json:"result"`
	Entry  LogEntry        `json:"entry"`
}

// Controller drives the submission workflow: Idle -> Loading ->
// {Success, Error}, back to accepting on every terminal outcome. It
// owns the one-slot in-flight guard that keeps at most one submission
// being processed at a time.
type Controller struct {
	extractor   extraction.Extractor
	log         *Log
	idGenerator IDGenerator
	timeSource  TimeSource

	mu     sync.Mutex
	busy   bool
	state  State
	banner string
}

// NewController creates a new Controller with default ID generator and time source
func NewController(extractor extraction.Extractor, log *Log) *Controller {
	return &Controller{
		extractor:   extractor,
		log:         log,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
		state:       StateIdle,
	}
}

// NewControllerWithDeps creates a new Controller with custom dependencies for testing
func NewControllerWithDeps(extractor extraction.Extractor, log *Log, idGen IDGenerator, timeSrc TimeSource) *Controller {
	c := NewController(extractor, log)
	c.idGenerator = idGen
	c.timeSource = timeSrc
	return c
}

// Submit runs one submission end to end. The upload is assumed already
// validated by the intake; every submission ends in exactly one
// terminal state, and only a successful extraction touches the log.
func (c *Controller) Submit(ctx context.Context, upload *Upload) (*Outcome, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}

	data, err := c.extractor.ExtractSlip(ctx, upload.FileName, upload.Data, upload.ContentType)
	if err != nil {
		slog.Error("Extraction failed", "file_name", upload.FileName, "error", err)
		c.finish(StateError, fmt.Sprintf("Error: %s", err.Error()))
		return nil, err
	}

	entry := NewLogEntry(c.idGenerator.Generate(), c.timeSource.Now(), upload.FileName, data)
	if err := c.log.Append(entry); err != nil {
		// Append durability is not guaranteed: a full store must not
		// fail the submission the user just watched succeed.
		slog.Warn("Failed to persist log entry", "entry_id", entry.ID, "error", err)
	}

	c.finish(StateSuccess, "Slip processed successfully")
	return &Outcome{Result: Render(data), Entry: entry}, nil
}

// Reject records a local intake rejection as the terminal outcome of a
// submission attempt that never reached the extraction service.
func (c *Controller) Reject(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	c.banner = fmt.Sprintf("Error: %s", err.Error())
}

// Status returns the current workflow state and banner message.
func (c *Controller) Status() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.banner
}

// begin claims the in-flight slot and enters Loading, hiding the
// previous banner.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	c.state = StateLoading
	c.banner = ""
	return nil
}

// finish records the terminal outcome and frees the in-flight slot.
func (c *Controller) finish(state State, banner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.state = state
	c.banner = banner
}
