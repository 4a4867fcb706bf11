package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the shim the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // real library resolution
	PhaseConfig    Phase = "config"    // settings file
	PhaseTranslate Phase = "translate" // legacy <-> real argument translation
	PhaseForward   Phase = "forward"   // call into the real API
	PhaseLifetime  Phase = "lifetime"  // reference counting
	PhaseIntercept Phase = "intercept" // exported entry points
)

// Kind categorizes the error
type Kind string

const (
	KindLoadFailure    Kind = "load_failure"
	KindTranslationGap Kind = "translation_gap"
	KindRealAPIFailure Kind = "real_api_failure"
	KindUnknownRequest Kind = "unknown_request"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindUnsupported    Kind = "unsupported"
	KindNilPointer     Kind = "nil_pointer"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error type used throughout the shim.
// Errors never cross the binary interface; callers log them and return a status code.
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Interface string
	Method    string
	Symbol    string
	Detail    string
	Path      []string
	Status    uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	target := e.target()
	if target != "" {
		b.WriteString(": ")
		b.WriteString(target)
	}

	if e.Status != 0 {
		fmt.Fprintf(&b, " status 0x%08X", e.Status)
	}

	if e.Detail != "" {
		if target != "" || e.Status != 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

func (e *Error) target() string {
	switch {
	case e.Symbol != "":
		return "symbol " + e.Symbol
	case e.Interface != "" && e.Method != "":
		return e.Interface + "::" + e.Method
	case e.Interface != "":
		return e.Interface
	case e.Method != "":
		return e.Method
	}
	return ""
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Interface sets the legacy interface name
func (b *Builder) Interface(name string) *Builder {
	b.err.Interface = name
	return b
}

// Method sets the method or entry point name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Symbol sets the exported symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Status sets the status code returned by the real API
func (b *Builder) Status(hr uint32) *Builder {
	b.err.Status = hr
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the shim's error taxonomy

// LoadFailure creates an error for a real library or symbol that could not be resolved
func LoadFailure(library string, missing []string, cause error) *Error {
	e := &Error{
		Phase:  PhaseLoad,
		Kind:   KindLoadFailure,
		Detail: library,
		Cause:  cause,
	}
	if len(missing) > 0 {
		e.Detail = fmt.Sprintf("%s: missing %s", library, strings.Join(missing, ", "))
		e.Value = missing
	}
	return e
}

// TranslationGap creates an error for a legacy field with no real counterpart.
// The caller substitutes a default and continues.
func TranslationGap(iface, method, field string, value any) *Error {
	return &Error{
		Phase:     PhaseTranslate,
		Kind:      KindTranslationGap,
		Interface: iface,
		Method:    method,
		Path:      []string{field},
		Value:     value,
		Detail:    fmt.Sprintf("no counterpart for %v", value),
	}
}

// RealAPIFailure creates an error for a failing call into the real API
func RealAPIFailure(iface, method string, status uint32) *Error {
	return &Error{
		Phase:     PhaseForward,
		Kind:      KindRealAPIFailure,
		Interface: iface,
		Method:    method,
		Status:    status,
	}
}

// UnknownRequest creates an error describing an identifier forwarded unmodified
func UnknownRequest(method, what, id string) *Error {
	return &Error{
		Phase:  PhaseIntercept,
		Kind:   KindUnknownRequest,
		Method: method,
		Detail: fmt.Sprintf("unrecognized %s %s forwarded", what, id),
		Value:  id,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, iface, method, arg string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNilPointer,
		Interface: iface,
		Method:    method,
		Path:      []string{arg},
		Detail:    "nil pointer",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
