package framesmith

import "errors"

// ValidatorFlags configures the strictness of a [Validator].
type ValidatorFlags uint8

const (
	// ValidateEvilBit makes validators reject the IPv4 "evil bit" (RFC 3514)
	// when set.
	ValidateEvilBit ValidatorFlags = 1 << iota
	// ValidateMultiError makes a Validator accumulate every error it
	// encounters instead of keeping only the first.
	ValidateMultiError
)

// Validator accumulates errors found while checking a constructed frame's
// size and field consistency. The zero value is ready to use.
type Validator struct {
	flags ValidatorFlags
	accum []error
}

// SetFlags replaces the validator's flags.
func (v *Validator) SetFlags(f ValidatorFlags) { v.flags = f }

// Flags returns the validator's current flags.
func (v *Validator) Flags() ValidatorFlags { return v.flags }

// Reset clears accumulated errors, readying the Validator for reuse.
func (v *Validator) Reset() { v.accum = v.accum[:0] }

// AddError records err. If ValidateMultiError is not set only the first
// error is kept; subsequent calls are no-ops until Reset.
func (v *Validator) AddError(err error) {
	if err == nil {
		return
	}
	if len(v.accum) != 0 && v.flags&ValidateMultiError == 0 {
		return
	}
	v.accum = append(v.accum, err)
}

// Err returns the accumulated error, or nil if none were recorded.
func (v *Validator) Err() error {
	switch len(v.accum) {
	case 0:
		return nil
	case 1:
		return v.accum[0]
	default:
		return errors.Join(v.accum...)
	}
}
