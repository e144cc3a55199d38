// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Parser configuration and recovery modes
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

import (
	"fmt"
	"strings"

	"github.com/msto63/glottony/pkg/core/logging"
)

// RecoveryMode selects how the lexer and parser react to errors
type RecoveryMode int

const (
	// RecoverErrors reports an error, repairs locally and continues so that
	// several errors are reported in one pass
	RecoverErrors RecoveryMode = iota

	// FailFast aborts at the first error
	FailFast
)

// String returns the configuration name of the mode
func (m RecoveryMode) String() string {
	switch m {
	case RecoverErrors:
		return "recover"
	case FailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("RecoveryMode(%d)", int(m))
	}
}

// ParseRecoveryMode converts a configuration name to a mode
func ParseRecoveryMode(s string) (RecoveryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recover", "recovery":
		return RecoverErrors, nil
	case "fail-fast", "failfast", "strict":
		return FailFast, nil
	default:
		return RecoverErrors, fmt.Errorf("unknown recovery mode %q", s)
	}
}

const (
	// DefaultMaxErrors is the number of errors after which parsing stops
	DefaultMaxErrors = 10

	// DefaultMaxInputLength limits the source size in bytes (1 MiB)
	DefaultMaxInputLength = 1 << 20
)

// Options configures parser behavior
type Options struct {
	Mode           RecoveryMode    // Error handling strategy
	MaxErrors      int             // Stop after this many errors (recover mode)
	MaxInputLength int             // Reject longer input; 0 disables the check
	Logger         *logging.Logger // Debug logging; nil disables logging
}

// DefaultOptions returns default parser options
func DefaultOptions() Options {
	return Options{
		Mode:           RecoverErrors,
		MaxErrors:      DefaultMaxErrors,
		MaxInputLength: DefaultMaxInputLength,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxErrors <= 0 {
		o.MaxErrors = DefaultMaxErrors
	}
	if o.MaxInputLength < 0 {
		o.MaxInputLength = 0
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}
