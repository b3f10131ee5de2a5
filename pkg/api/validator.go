package api

import "errors"

// Validator is implemented by payload DTOs that carry constraints.
// The handler wrapper calls Validate automatically after unmarshal.
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

func (p CluePayload) Validate() error {
	if p.Answer == "" && !p.Force {
		return errors.New("answer is required")
	}
	return nil
}

func (p AdjustOxygenPayload) Validate() error {
	if p.DeltaMs == 0 {
		return errors.New("deltaMs cannot be zero")
	}
	return nil
}
