// Package errors provides coded errors shared by the companion packages.
package errors

import "strings"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Transport categories. Every domain code maps to one of these.
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL"

	// Fight errors
	CodeStatsInvalid   Code = "STATS_INVALID"
	CodeRollInProgress Code = "ROLL_IN_PROGRESS"

	// Dice errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"
	CodeDiceTooMany     Code = "DICE_TOO_MANY"

	// Theme errors
	CodePaletteUnknown  Code = "PALETTE_UNKNOWN"
	CodeManifestInvalid Code = "MANIFEST_INVALID"
)

// Category maps a code to the transport category reported to clients.
func (c Code) Category() Code {
	switch c {
	case CodeInvalidArgument,
		CodeStatsInvalid,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeDiceTooMany,
		CodeManifestInvalid:
		return CodeInvalidArgument

	// FailedPrecondition - table state doesn't allow the action
	case CodeFailedPrecondition,
		CodeRollInProgress:
		return CodeFailedPrecondition

	case CodeNotFound,
		CodePaletteUnknown:
		return CodeNotFound

	case CodeResourceExhausted:
		return CodeResourceExhausted

	default:
		return CodeInternal
	}
}

// MessageKey returns the catalog key of the user-facing message for c's
// category.
func (c Code) MessageKey() string {
	return "error." + strings.ToLower(string(c.Category()))
}
