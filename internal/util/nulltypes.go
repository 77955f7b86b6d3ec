// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
	"encoding/json"
)

// NullString wraps sql.NullString so it scans like a nullable column but
// marshals to plain JSON: the string value when valid, null otherwise.
// Project records have dozens of nullable text columns, so the API serves
// model structs directly instead of copying into response types.
type NullString struct {
	sql.NullString
}

// Str returns a valid NullString.
func Str(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON implements json.Marshaler.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.NullString = sql.NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.NullString = sql.NullString{String: s, Valid: true}
	return nil
}

// NullBool wraps sql.NullBool with the same JSON behavior as NullString.
type NullBool struct {
	sql.NullBool
}

// MarshalJSON implements json.Marshaler.
func (n NullBool) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Bool)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullBool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.NullBool = sql.NullBool{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	n.NullBool = sql.NullBool{Bool: b, Valid: true}
	return nil
}

// NullStringFromValue creates a sql.NullString from a string value.
// Returns a valid NullString if the string is non-empty, otherwise returns an invalid one.
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringFromPtr converts a pointer to string into sql.NullString.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr != nil {
		return sql.NullString{String: *ptr, Valid: true}
	}
	return sql.NullString{}
}

// NullInt64FromValue creates a valid sql.NullInt64 from an int64 value.
func NullInt64FromValue(val int64) sql.NullInt64 {
	return sql.NullInt64{Int64: val, Valid: true}
}
