// Package config centralises named constants for the declaration
// front-end, grounded on the teacher's own practice of grouping magic
// numbers and lookup tables into internal/config rather than scattering
// them through the parser and analyser.
package config

// MaxParams bounds the number of parameters a function signature may
// declare (§4.H "Function signature"). Exceeding it is reported at the
// first excess parameter.
const MaxParams = 127

// MaxAlignment bounds the value accepted by an @align attribute
// (§4.H attribute table).
const MaxAlignment = 1 << 16

// SourceFileExt is the canonical source file extension used to derive a
// module name from a file path when no explicit `module` statement is
// present (§4.B).
const SourceFileExt = ".c3"

// IsValidABIName reports whether name is acceptable as an @cname target
// symbol (SPEC_FULL §9 supplement: "extern function attribute validation
// against a target ABI name allowlist") — a non-empty C identifier, since
// every object format this front-end targets rejects anything else.
func IsValidABIName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
