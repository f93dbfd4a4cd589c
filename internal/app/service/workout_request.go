package service

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"
	"workout_api/internal/common"
	"workout_api/internal/domain/model"
)

const (
	fieldTitle = "title"
	fieldReps  = "reps"
	fieldLoad  = "load"
)

// WorkoutRequest is a decoded JSON object whose values are still raw. Keeping
// them raw lets validation tell a missing field from a mistyped one.
type WorkoutRequest map[string]json.RawMessage

// DecodeWorkoutRequest reads a JSON object from r.
func DecodeWorkoutRequest(r io.Reader) (WorkoutRequest, error) {
	dec := json.NewDecoder(r)
	var req WorkoutRequest
	if err := dec.Decode(&req); err != nil || req == nil {
		return nil, common.NewFieldError("body", "must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, common.NewFieldError("body", "must contain a single JSON object")
	}
	return req, nil
}

// parse validates the recognised fields. With requireAll every field must be
// present (create); otherwise only present fields are checked and at least
// one is needed (update).
func (req WorkoutRequest) parse(requireAll bool) (model.WorkoutPatch, error) {
	var (
		patch model.WorkoutPatch
		vErr  common.ValidationError
	)

	if raw, ok := req[fieldTitle]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil || isNull(raw) {
			vErr.Add(fieldTitle, "must be a string")
		} else if strings.TrimSpace(title) == "" {
			vErr.Add(fieldTitle, "must not be empty")
		} else {
			patch.Title = &title
		}
	} else if requireAll {
		vErr.Add(fieldTitle, "is required")
	}

	if raw, ok := req[fieldReps]; ok {
		n, ok := parseNumber(raw)
		if !ok {
			vErr.Add(fieldReps, "must be a number")
		} else if reps, err := n.Int64(); err != nil || reps <= 0 || reps > math.MaxInt32 {
			vErr.Add(fieldReps, "must be a positive integer")
		} else {
			r := int(reps)
			patch.Reps = &r
		}
	} else if requireAll {
		vErr.Add(fieldReps, "is required")
	}

	if raw, ok := req[fieldLoad]; ok {
		n, ok := parseNumber(raw)
		if !ok {
			vErr.Add(fieldLoad, "must be a number")
		} else if load, err := n.Float64(); err != nil || load < 0 || math.IsInf(load, 0) {
			vErr.Add(fieldLoad, "must be a non-negative number")
		} else {
			if load == 0 {
				load = 0 // drop the sign of -0
			}
			patch.Load = &load
		}
	} else if requireAll {
		vErr.Add(fieldLoad, "is required")
	}

	if err := vErr.OrNil(); err != nil {
		return model.WorkoutPatch{}, err
	}
	if patch.Empty() {
		return model.WorkoutPatch{}, common.NewFieldError("body", "no updatable fields supplied (title, reps, load)")
	}
	return patch, nil
}

// parseNumber accepts only JSON number literals; strings, booleans and null are rejected.
func parseNumber(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
