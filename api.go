// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package hufframe is a collection of canonical Huffman coding utilities.
//
// The frame package encodes 7-bit text into a self-describing frame and
// decodes it back. This package defines the error interface shared by every
// package in this module.
package hufframe

// Error is the wrapper type for errors specific to this library.
type Error interface {
	error
	HufframeError() // Marker method

	// IsInvalid reports whether the input to an encoder was invalid,
	// such as a byte outside of the 7-bit alphabet.
	IsInvalid() bool

	// IsInternal reports whether an internal invariant was violated,
	// such as a symbol without an entry in the code table.
	IsInternal() bool

	// IsCorrupted reports whether the input stream was malformed.
	IsCorrupted() bool
}

// IsInvalidSymbol reports whether err is an InvalidSymbol error.
func IsInvalidSymbol(err error) bool {
	e, ok := err.(Error)
	return ok && e.IsInvalid()
}

// IsMissingCodeEntry reports whether err is a MissingCodeEntry error.
func IsMissingCodeEntry(err error) bool {
	e, ok := err.(Error)
	return ok && e.IsInternal()
}

// IsMalformedStream reports whether err is a MalformedStream error.
func IsMalformedStream(err error) bool {
	e, ok := err.(Error)
	return ok && e.IsCorrupted()
}
