package framesmith

import (
	"errors"
	"testing"
)

func TestValidatorKeepsFirstErrorByDefault(t *testing.T) {
	var v Validator
	err1 := errors.New("first")
	err2 := errors.New("second")
	v.AddError(err1)
	v.AddError(err2)
	if v.Err() != err1 {
		t.Errorf("want first error kept, got %v", v.Err())
	}
}

func TestValidatorMultiError(t *testing.T) {
	var v Validator
	v.SetFlags(ValidateMultiError)
	err1 := errors.New("first")
	err2 := errors.New("second")
	v.AddError(err1)
	v.AddError(err2)
	joined := v.Err()
	if !errors.Is(joined, err1) || !errors.Is(joined, err2) {
		t.Errorf("want both errors joined, got %v", joined)
	}
}

func TestValidatorReset(t *testing.T) {
	var v Validator
	v.AddError(errors.New("boom"))
	v.Reset()
	if v.Err() != nil {
		t.Errorf("want nil error after Reset, got %v", v.Err())
	}
}

func TestValidatorNilErrorIgnored(t *testing.T) {
	var v Validator
	v.AddError(nil)
	if v.Err() != nil {
		t.Error("want AddError(nil) to be a no-op")
	}
}
