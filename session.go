package diffinsight

import (
	"iter"
	"strings"
)

// SessionState is the state of an analysis Session.
type SessionState int

// Session states.
const (
	Idle SessionState = iota
	Running
	Completed
	Failed
)

// String returns the lower-case name of the state.
func (s SessionState) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Request is the buffer snapshot handed to the analysis service when a
// session starts running. ID ties the eventual outcome back to the request.
type Request struct {
	ID    uint64
	Input string
}

// Session tracks the input buffer, the busy flag and the last analysis
// result. It is not safe for concurrent use; a single event loop owns it.
type Session struct {
	input  string
	state  SessionState
	result *AnalysisResult
	err    *AnalysisError

	pending uint64 // ID of the outstanding request, 0 when none
	lastID  uint64
	closed  bool

	clearResultOnRun bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClearResultOnRun controls whether the previous result is dropped when
// a new analysis starts. By default it stays visible while running.
func WithClearResultOnRun(clear bool) SessionOption {
	return func(s *Session) {
		s.clearResultOnRun = clear
	}
}

// WithInput seeds the input buffer.
func WithInput(text string) SessionOption {
	return func(s *Session) {
		s.input = text
	}
}

// NewSession creates an Idle session with an empty buffer.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{state: Idle}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetInput replaces the input buffer. Edits are allowed in every state; a
// running analysis keeps working on the snapshot it started with.
func (s *Session) SetInput(text string) {
	s.input = text
}

// Input returns the current input buffer.
func (s *Session) Input() string {
	return s.input
}

// Lines returns the classified lines of the current buffer.
func (s *Session) Lines() iter.Seq[DiffLine] {
	return Lines(s.input)
}

// State returns the current state.
func (s *Session) State() SessionState {
	return s.state
}

// Busy reports whether an analysis is outstanding.
func (s *Session) Busy() bool {
	return s.state == Running
}

// Result returns the held result, or nil if no analysis has completed yet.
// Callers must not modify it.
func (s *Session) Result() *AnalysisResult {
	return s.result
}

// Err returns the failure of the last analysis while the session is Failed.
func (s *Session) Err() *AnalysisError {
	if s.state != Failed {
		return nil
	}
	return s.err
}

// CanAnalyze reports whether Begin would start an analysis.
func (s *Session) CanAnalyze() bool {
	return !s.Busy() && !s.closed && strings.TrimSpace(s.input) != ""
}

// Begin moves the session to Running and returns the request to hand to the
// analysis service. It returns ErrBusy while another request is outstanding
// and ErrEmptyInput when the buffer is blank; in both cases nothing changes.
func (s *Session) Begin() (Request, error) {
	if s.closed {
		return Request{}, ErrSessionClosed
	}
	if s.Busy() {
		return Request{}, ErrBusy
	}
	if strings.TrimSpace(s.input) == "" {
		return Request{}, ErrEmptyInput
	}

	s.lastID++
	s.pending = s.lastID
	s.state = Running
	s.err = nil
	if s.clearResultOnRun {
		s.result = nil
	}
	return Request{ID: s.pending, Input: s.input}, nil
}

// Resolve applies the outcome of req. It reports false and changes nothing
// when req is not the outstanding request or the session has been closed.
func (s *Session) Resolve(req Request, o Outcome) bool {
	if s.closed || s.state != Running || req.ID == 0 || req.ID != s.pending {
		return false
	}
	s.pending = 0

	if o.Err != nil {
		s.state = Failed
		s.err = o.Err
		return true
	}

	s.state = Completed
	s.result = o.Result.Clone()
	return true
}

// Close marks the session as torn down. Outcomes arriving afterwards are
// dropped.
func (s *Session) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}
