// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     logging
// Description: Performance timer that logs the duration of an operation
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import "time"

// Timer measures the duration of an operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
	}
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time at debug level.
// Calling Stop more than once logs nothing and returns 0.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	args := []interface{}{
		"operation", t.operation,
		"duration_us", elapsed.Microseconds(),
	}
	for k, v := range t.fields {
		args = append(args, k, v)
	}
	t.logger.Debug("operation completed", args...)
	return elapsed
}
