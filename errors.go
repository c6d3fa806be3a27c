package routebind

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danpasecinic/routebind/internal/container"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeEnumCaseNotFound
	ErrCodeModelNotFound
	ErrCodeLookupFailed
	ErrCodeUnresolvableDependency
	ErrCodeArgumentMismatch
	ErrCodeMethodNotFound
	ErrCodeInvalidTarget
	ErrCodeInvalidDefinition
	ErrCodeInvocationFailed
	ErrCodeServiceNotFound
	ErrCodeCircularDependency
	ErrCodeDuplicateService
	ErrCodeResolutionFailed
	ErrCodeValidationFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "UNKNOWN",
	ErrCodeEnumCaseNotFound:       "ENUM_CASE_NOT_FOUND",
	ErrCodeModelNotFound:          "MODEL_NOT_FOUND",
	ErrCodeLookupFailed:           "LOOKUP_FAILED",
	ErrCodeUnresolvableDependency: "UNRESOLVABLE_DEPENDENCY",
	ErrCodeArgumentMismatch:       "ARGUMENT_MISMATCH",
	ErrCodeMethodNotFound:         "METHOD_NOT_FOUND",
	ErrCodeInvalidTarget:          "INVALID_TARGET",
	ErrCodeInvalidDefinition:      "INVALID_DEFINITION",
	ErrCodeInvocationFailed:       "INVOCATION_FAILED",
	ErrCodeServiceNotFound:        "SERVICE_NOT_FOUND",
	ErrCodeCircularDependency:     "CIRCULAR_DEPENDENCY",
	ErrCodeDuplicateService:       "DUPLICATE_SERVICE",
	ErrCodeResolutionFailed:       "RESOLUTION_FAILED",
	ErrCodeValidationFailed:       "VALIDATION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

type Error struct {
	Code      ErrorCode
	Message   string
	Parameter string
	Type      string
	Values    []string
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Parameter != "" {
		b.WriteString(fmt.Sprintf(" parameter=%q", e.Parameter))
	}
	if e.Type != "" {
		b.WriteString(fmt.Sprintf(" type=%s", e.Type))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithParameter(name string) *Error {
	e.Parameter = name
	return e
}

func (e *Error) WithType(typeName string) *Error {
	e.Type = typeName
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errEnumCaseNotFound(param, enumType, raw string) *Error {
	e := newError(
		ErrCodeEnumCaseNotFound,
		fmt.Sprintf("case %q not found", raw),
		nil,
	).WithParameter(param).WithType(enumType)
	e.Values = []string{raw}
	return e
}

func errModelNotFound(param, lookupType string, raw string) *Error {
	e := newError(
		ErrCodeModelNotFound,
		fmt.Sprintf("no query results for [%s]", raw),
		nil,
	).WithParameter(param).WithType(lookupType)
	e.Values = []string{raw}
	return e
}

func errLookupFailed(param, lookupType string, cause error) *Error {
	return newError(ErrCodeLookupFailed, "lookup failed", cause).WithParameter(param).WithType(lookupType)
}

func errUnresolvableDependency(param, typeName string, cause error) *Error {
	return newError(
		ErrCodeUnresolvableDependency,
		"unable to resolve dependency",
		cause,
	).WithParameter(param).WithType(typeName)
}

func errArgumentMismatch(param, want string, got any) *Error {
	return newError(
		ErrCodeArgumentMismatch,
		fmt.Sprintf("cannot use %T as %s", got, want),
		nil,
	).WithParameter(param).WithType(want)
}

func errMethodNotFound(class, method string, cause error) *Error {
	return newError(
		ErrCodeMethodNotFound,
		fmt.Sprintf("method %s not found", method),
		cause,
	).WithType(class)
}

func errInvalidTarget(message string) *Error {
	return newError(ErrCodeInvalidTarget, message, nil)
}

func errInvalidDefinition(typeName string, cause error) *Error {
	return newError(ErrCodeInvalidDefinition, "invalid class definition", cause).WithType(typeName)
}

func errInvocationFailed(class, method string, cause error) *Error {
	return newError(
		ErrCodeInvocationFailed,
		fmt.Sprintf("%s returned error", method),
		cause,
	).WithType(class)
}

func errResolutionFailed(serviceType string, cause error) *Error {
	return newError(
		ErrCodeResolutionFailed,
		fmt.Sprintf("failed to resolve %s", serviceType),
		cause,
	).WithType(serviceType)
}

func errValidationFailed(cause error) *Error {
	return newError(ErrCodeValidationFailed, "container validation failed", cause)
}

// containerError maps an internal container failure onto the public codes.
func containerError(key string, err error) *Error {
	switch {
	case errors.Is(err, container.ErrCircular):
		return newError(ErrCodeCircularDependency, "circular dependency detected", err).WithType(key)
	case errors.Is(err, container.ErrDuplicate):
		return newError(ErrCodeDuplicateService, "provider already registered", err).WithType(key)
	case errors.Is(err, container.ErrNotFound):
		return newError(ErrCodeServiceNotFound, "no provider registered", err).WithType(key)
	default:
		return errResolutionFailed(key, err)
	}
}

func hasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

// IsNotFound reports whether err is an enum case or model lookup miss, the
// failures a boundary translates into "resource not found".
func IsNotFound(err error) bool {
	return IsEnumCaseNotFound(err) || IsModelNotFound(err)
}

// HTTPStatus is the status an HTTP boundary answers a binding error with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func IsEnumCaseNotFound(err error) bool {
	return hasCode(err, ErrCodeEnumCaseNotFound)
}

func IsModelNotFound(err error) bool {
	return hasCode(err, ErrCodeModelNotFound)
}

func IsLookupFailed(err error) bool {
	return hasCode(err, ErrCodeLookupFailed)
}

func IsUnresolvableDependency(err error) bool {
	return hasCode(err, ErrCodeUnresolvableDependency)
}

func IsArgumentMismatch(err error) bool {
	return hasCode(err, ErrCodeArgumentMismatch)
}

func IsMethodNotFound(err error) bool {
	return hasCode(err, ErrCodeMethodNotFound)
}

func IsInvocationFailed(err error) bool {
	return hasCode(err, ErrCodeInvocationFailed)
}

func IsServiceNotFound(err error) bool {
	return hasCode(err, ErrCodeServiceNotFound)
}

func IsCircularDependency(err error) bool {
	return hasCode(err, ErrCodeCircularDependency)
}

func IsDuplicateService(err error) bool {
	return hasCode(err, ErrCodeDuplicateService)
}

func IsResolutionFailed(err error) bool {
	return hasCode(err, ErrCodeResolutionFailed)
}
