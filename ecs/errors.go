package ecs

import (
	"errors"
	"fmt"
)

// ErrRegistryFull is returned when more component types are registered than
// an access mask can address.
var ErrRegistryFull = errors.New("component registry full")

// UnknownEntityError reports an operation against an entity that was never
// created or has already been destroyed.
type UnknownEntityError struct {
	Entity EntityID
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %d", e.Entity)
}

// CapacityError reports that the configured entity limit has been reached.
type CapacityError struct {
	Max int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("entity capacity exceeded (max %d)", e.Max)
}

// DuplicateComponentError reports a component type registered under a name
// that is already taken.
type DuplicateComponentError struct {
	Name string
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %q already registered", e.Name)
}

// DuplicateSystemError reports a system registered under a name that is
// already taken.
type DuplicateSystemError struct {
	Name string
}

func (e DuplicateSystemError) Error() string {
	return fmt.Sprintf("system %q already registered", e.Name)
}

// AccessError reports a system whose declared access set references a
// component that was never registered.
type AccessError struct {
	System    string
	Component ComponentID
}

func (e AccessError) Error() string {
	return fmt.Sprintf("system %q declares access to unregistered component %d", e.System, e.Component)
}

// StartedError reports a registration or configuration call made after the
// first frame has run. The system and component sets are closed at that point.
type StartedError struct{}

func (e StartedError) Error() string {
	return "scheduler already started: registration is closed"
}

// TransformError wraps the first error observed while running a system's
// transform during a frame.
type TransformError struct {
	System string
	Err    error
}

func (e TransformError) Error() string {
	return fmt.Sprintf("system %q failed: %v", e.System, e.Err)
}

func (e TransformError) Unwrap() error {
	return e.Err
}
