package conversion

import "fmt"

// ErrorKind is the closed set of conversion failures.
type ErrorKind int

const (
	NoContent ErrorKind = iota
	UnsafePODType
	UnexpectedForeignItem
	UnexpectedOuterItem
	UnexpectedItemInMod
	ComplexTypedefTarget
	UnexpectedThisType
)

func (k ErrorKind) String() string {
	switch k {
	case NoContent:
		return "NoContent"
	case UnsafePODType:
		return "UnsafePODType"
	case UnexpectedForeignItem:
		return "UnexpectedForeignItem"
	case UnexpectedOuterItem:
		return "UnexpectedOuterItem"
	case UnexpectedItemInMod:
		return "UnexpectedItemInMod"
	case ComplexTypedefTarget:
		return "ComplexTypedefTarget"
	case UnexpectedThisType:
		return "UnexpectedThisType"
	default:
		return "unknown"
	}
}

// ConvertError is returned for every conversion failure. Detail names the
// offending type or function where one is known.
type ConvertError struct {
	Kind   ErrorKind
	Detail string
}

// Sentinels for errors.Is.
var (
	ErrNoContent             = &ConvertError{Kind: NoContent}
	ErrUnsafePODType         = &ConvertError{Kind: UnsafePODType}
	ErrUnexpectedForeignItem = &ConvertError{Kind: UnexpectedForeignItem}
	ErrUnexpectedOuterItem   = &ConvertError{Kind: UnexpectedOuterItem}
	ErrUnexpectedItemInMod   = &ConvertError{Kind: UnexpectedItemInMod}
	ErrComplexTypedefTarget  = &ConvertError{Kind: ComplexTypedefTarget}
	ErrUnexpectedThisType    = &ConvertError{Kind: UnexpectedThisType}
)

func newError(kind ErrorKind, format string, args ...any) *ConvertError {
	return &ConvertError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *ConvertError) Error() string {
	var msg string
	switch e.Kind {
	case NoContent:
		msg = "the binding extraction produced no content; none of the requested items may be convertible"
	case UnsafePODType:
		msg = "an item requested as a value type is not safe to hold by value"
	case UnexpectedForeignItem:
		msg = "unexpected declaration in a foreign block; something requested for generation is not supported, adjust the accept-list"
	case UnexpectedOuterItem:
		msg = "unexpected declaration in the outermost module; something requested for generation is not supported, adjust the accept-list"
	case UnexpectedItemInMod:
		msg = "unexpected declaration in a namespace module; something requested for generation is not supported, adjust the accept-list"
	case ComplexTypedefTarget:
		msg = "unable to produce a typedef pointing to a complex type"
	case UnexpectedThisType:
		msg = "unexpected type for 'this'"
	default:
		msg = "conversion failed"
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return msg
}

// Is matches any ConvertError of the same kind.
func (e *ConvertError) Is(target error) bool {
	t, ok := target.(*ConvertError)
	return ok && t.Kind == e.Kind
}
