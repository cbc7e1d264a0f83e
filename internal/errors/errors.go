// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate codec errors.
//
// We wrap the error type for two reasons:
//
//	1. To tag every error with the package that raised it.
//	2. To let callers classify failures (bad input text, internal
//	inconsistencies, and malformed frames) without string matching.
//
// The codec raises errors with Panic deep inside bit-level loops and converts
// them back into return values with Recover at every exported entry point.
package errors

import (
	"runtime"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	// A symbol without a code table entry at packing time is reported this way.
	Internal

	// Invalid indicates that this error is due to the user misusing the API
	// and is indicative of a bug on the user's part. Text containing a symbol
	// outside of the 7-bit alphabet is reported this way.
	Invalid

	// Corrupted indicates that the input frame is corrupted: truncated
	// mid-code, inconsistent header counts, or an unusable code table.
	Corrupted

	// Closed indicates that the handlers are closed.
	Closed
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Invalid:   "invalid symbol",
	Corrupted: "malformed stream",
	Closed:    "closed handler",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, ": ")
}

func (e Error) HufframeError()    {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsCorrupted() bool { return e.Code == Corrupted }
func (e Error) IsClosed() bool    { return e.Code == Closed }

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsCorrupted(err error) bool { return isCode(err, Corrupted) }
func IsClosed(err error) bool    { return isCode(err, Closed) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}

// Panic panics with err, which Recover will turn back into a return value.
func Panic(err error) {
	panic(err)
}

// Recover converts a panicking error into a return value stored in err.
// Runtime errors and non-error panics are re-raised.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
