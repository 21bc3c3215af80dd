// Package apperr defines the typed error kinds the lifecycle engine and
// its supporting services surface to callers (spec.md §7). Transport
// layers map each Kind to a distinct surface code; this package only
// guarantees errors.As/errors.Is match correctly.
package apperr

import "fmt"

// Kind enumerates the error kinds named in spec.md §7.
type Kind string

const (
	KindLookupNotFound            Kind = "LOOKUP_NOT_FOUND"
	KindConfigurationMissing      Kind = "CONFIGURATION_MISSING"
	KindPermissionDenied          Kind = "PERMISSION_DENIED"
	KindInvalidTransition         Kind = "INVALID_TRANSITION"
	KindValidationFailed          Kind = "VALIDATION_FAILED"
	KindRejectionCommentRequired  Kind = "REJECTION_COMMENT_REQUIRED"
	KindAlreadyActed              Kind = "ALREADY_ACTED"
	KindTemplateInvariantViolated Kind = "TEMPLATE_INVARIANT_VIOLATED"
	KindConcurrentUpdate          Kind = "CONCURRENT_UPDATE"
	KindStorageFailure            Kind = "STORAGE_FAILURE"
)

// Error is the typed error every component in this module returns for
// domain failures. Wrap with fmt.Errorf("...: %w", err) freely; Kind and
// the ValidationFailed payload survive unwrapping via errors.As.
type Error struct {
	Kind    Kind
	Message string
	// MissingFields/MissingAttachments are populated only for
	// KindValidationFailed (spec.md §4.7 submit()).
	MissingFields      []string
	MissingAttachments []string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// Is makes errors.Is(err, apperr.New(KindX, "")) match on Kind alone,
// so callers can probe for a kind without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationFailed(missingFields, missingAttachments []string) *Error {
	return &Error{
		Kind:               KindValidationFailed,
		Message:            "submission validation failed",
		MissingFields:      missingFields,
		MissingAttachments: missingAttachments,
	}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and reports whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
