package report

import "fmt"

// Kind classifies a fatal engine failure.
type Kind int

const (
	KindNone Kind = iota

	// KindOutOfMemory is part of the wire-level taxonomy shared with other
	// runtimes that consume the same generated tables. The Go engine never
	// raises it itself because allocation failure is not recoverable here.
	KindOutOfMemory

	// KindBadCharacter means the lexer stalled before consuming the whole
	// input.
	KindBadCharacter

	// KindBadToken means the parser has no action for the current
	// state/lookahead pair.
	KindBadToken

	// KindUnexpectedEOF means a shift action was selected but no token
	// remains.
	KindUnexpectedEOF
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "no error"
	case KindOutOfMemory:
		return "out of memory"
	case KindBadCharacter:
		return "bad character"
	case KindBadToken:
		return "bad token"
	case KindUnexpectedEOF:
		return "unexpected end of input"
	}
	return "unknown error"
}

// MaxMessageLength bounds the message retained by an ErrorState.
const MaxMessageLength = 255

// PosNone marks an error that has no meaningful byte offset.
const PosNone = -1

// Error is the failure value returned by the lexer and the parser. The same
// information is also recorded in the ErrorState the engines share.
type Error struct {
	Kind    Kind
	Pos     int
	Message string
}

func (e *Error) Error() string {
	if e.Pos == PosNone {
		return fmt.Sprintf("%v: %v", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v at %v: %v", e.Kind, e.Pos, e.Message)
}

// ErrorState is a single-slot failure record. One instance is threaded
// through a whole lex/parse invocation; the most recent Set wins.
type ErrorState struct {
	kind    Kind
	pos     int
	message string
}

func NewErrorState() *ErrorState {
	s := &ErrorState{}
	s.Reset()
	return s
}

// Reset clears the slot.
func (s *ErrorState) Reset() {
	s.kind = KindNone
	s.pos = PosNone
	s.message = ""
}

// Set records a failure, overwriting any previous one, and returns the
// corresponding Error. Messages longer than MaxMessageLength are truncated.
func (s *ErrorState) Set(kind Kind, pos int, message string) *Error {
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}
	s.kind = kind
	s.pos = pos
	s.message = message
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: message,
	}
}

// Setf is Set with printf-style message formatting.
func (s *ErrorState) Setf(kind Kind, pos int, format string, args ...interface{}) *Error {
	return s.Set(kind, pos, fmt.Sprintf(format, args...))
}

func (s *ErrorState) Kind() Kind {
	return s.kind
}

func (s *ErrorState) Pos() int {
	return s.pos
}

func (s *ErrorState) Message() string {
	return s.message
}

// OK reports whether no failure has been recorded since the last Reset.
func (s *ErrorState) OK() bool {
	return s.kind == KindNone
}

// Err returns the recorded failure as an error, or nil.
func (s *ErrorState) Err() error {
	if s.kind == KindNone {
		return nil
	}
	return &Error{
		Kind:    s.kind,
		Pos:     s.pos,
		Message: s.message,
	}
}
