// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package substitute

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseRules(t *testing.T) {
	vectors := []struct {
		input string
		want  []Rule
		line  int // Line of the syntax error, if any
	}{{
		input: "",
	}, {
		input: "cat dog\n\n  # comment\nbird\n\tfish   whale  \n",
		want:  []Rule{{"cat", "dog"}, {"bird", ""}, {"fish", "whale"}},
	}, {
		input: "a b\r\nc d\r\n",
		want:  []Rule{{"a", "b"}, {"c", "d"}},
	}, {
		input: "a b\nc d e\n",
		line:  2,
	}}

	for i, v := range vectors {
		got, err := ParseRules(strings.NewReader(v.input))
		if v.line > 0 {
			serr, ok := err.(*SyntaxError)
			if !ok || serr.Line != v.line {
				t.Errorf("test %d, error mismatch: got %v, want syntax error on line %d", i, err, v.line)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if diff := cmp.Diff(v.want, got); diff != "" {
			t.Errorf("test %d, rules mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestApply(t *testing.T) {
	rules := []Rule{
		{"cat", "dog"},
		{"the", "a"},
		{"cat", "lion"},
		{"very", ""},
		{"at", "@"},
	}

	vectors := []struct {
		mode   Mode
		input  string
		output string
	}{
		{WholeWord, "", ""},
		{WholeWord, "the cat sat", "a dog sat"},
		{WholeWord, "cat\r\ncat\n", "dog\ndog\n"},
		{WholeWord, "a very  big cat.", "a   big cat."},
		{WholeWord, "concatenate at the cathedral", "concatenate @ a cathedral"},
		{WholeWord, "\n\ncat  ", "\n\ndog  "},
		{Substring, "the cat sat", "a dog s@"},
		{Substring, "concatenate", "condogen@e"},
		{Substring, "scatter", "sdogter"},
		{Substring, "very\r\n", "\r\n"},
	}

	for i, v := range vectors {
		got := string(New(rules, v.mode).Apply([]byte(v.input)))
		if got != v.output {
			t.Errorf("test %d, Apply(%q): got %q, want %q", i, v.input, got, v.output)
		}
	}
}

func TestRuleFile(t *testing.T) {
	f, err := os.Open("../testdata/notes.rules")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rules, err := ParseRules(f)
	assert.NoError(t, err)
	assert.Len(t, rules, 3)

	got := New(rules, WholeWord).Apply([]byte("C4 quarter D4 eighth\nG4 half\n"))
	assert.Equal(t, "C4 q D4 e\nG4 h\n", string(got))
}
