package errors

import (
	"errors"
	"fmt"
)

// TaskPanicError is reported when a task panics inside Execute or Complete.
type TaskPanicError struct {
	Value any
}

func NewTaskPanicError(value any) *TaskPanicError {
	return &TaskPanicError{Value: value}
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

func IsTaskPanicError(err error) bool {
	var e *TaskPanicError
	return errors.As(err, &e)
}

type UnknownModelError struct {
	model string
}

func NewUnknownModelError(model string) *UnknownModelError {
	return &UnknownModelError{model: model}
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown pool model %q: must be \"parallel\" or \"cooperative\"", e.model)
}

func IsUnknownModelError(err error) bool {
	var e *UnknownModelError
	return errors.As(err, &e)
}

type InvalidConfigurationError struct {
	field  string
	reason string
}

func NewInvalidConfigurationError(field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{field: field, reason: reason}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.field, e.reason)
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}

type InvalidWorkloadError struct {
	kind   string
	reason string
}

func NewInvalidWorkloadError(kind, reason string) *InvalidWorkloadError {
	return &InvalidWorkloadError{kind: kind, reason: reason}
}

func (e *InvalidWorkloadError) Error() string {
	return fmt.Sprintf("invalid workload %q: %s", e.kind, e.reason)
}

func IsInvalidWorkloadError(err error) bool {
	var e *InvalidWorkloadError
	return errors.As(err, &e)
}

// ResourceNotFoundError is the common shape of every "not found" error.
type ResourceNotFoundError struct {
	resource string
	id       string
}

func NewTaskNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: "task", id: id}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.resource, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}
