// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package patch implements tri-state JSON fields for partial record updates.
// Each field distinguishes three states a caller can express: the key was
// absent from the request body (leave the column unchanged), the key was
// present with a usable value (set the column), or the key was present with
// null or a blank string (clear the column to NULL).
package patch

import (
	"database/sql"
	"encoding/json"
	"strings"
)

// String is a tri-state text field. The zero value means "not present in the
// patch". When present, Value carries either the trimmed text or an invalid
// NullString for an explicit clear.
type String struct {
	Present bool
	Value   sql.NullString
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the key
// exists in the request body, so Present is always set here. A JSON null or a
// string that is empty after trimming both resolve to an explicit clear.
func (f *String) UnmarshalJSON(data []byte) error {
	f.Present = true

	if string(data) == "null" {
		f.Value = sql.NullString{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	s = strings.TrimSpace(s)
	f.Value = sql.NullString{String: s, Valid: s != ""}
	return nil
}

// Set returns a String that sets the column to the trimmed value.
func Set(s string) String {
	s = strings.TrimSpace(s)
	return String{Present: true, Value: sql.NullString{String: s, Valid: s != ""}}
}

// Clear returns a String that forces the column to NULL.
func Clear() String {
	return String{Present: true}
}

// Flag is a tri-state checkbox field. Absent means unchanged. A provided
// value of true, "true", "Y" or "y" stores true; any other provided value
// (including explicit false or null) stores NULL, which is the unchecked
// state. "Not mentioned" and "mentioned but false" are different transitions
// and must stay distinguishable.
type Flag struct {
	Present bool
	Value   sql.NullBool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	f.Present = true
	f.Value = sql.NullBool{}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case bool:
		if t {
			f.Value = sql.NullBool{Bool: true, Valid: true}
		}
	case string:
		switch strings.TrimSpace(t) {
		case "true", "Y", "y":
			f.Value = sql.NullBool{Bool: true, Valid: true}
		}
	}
	return nil
}

// SetFlag returns a Flag carrying an explicit true or unchecked value.
func SetFlag(on bool) Flag {
	if on {
		return Flag{Present: true, Value: sql.NullBool{Bool: true, Valid: true}}
	}
	return Flag{Present: true}
}
