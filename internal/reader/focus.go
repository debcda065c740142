// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"unicode"
)

// Frame is the view model handed to a render sink for one displayed word,
// split around its optimal recognition point.
type Frame struct {
	Left  string `json:"left"`
	Focus string `json:"focus"`
	Right string `json:"right"`
}

// Word reassembles the full token.
func (f Frame) Word() string {
	return f.Left + f.Focus + f.Right
}

// SplitWord splits a token around its focus character: the middle letter of
// the word's letter positions. Tokens with no letters (numbers, dashes) are
// rendered entirely on the left with no focus.
func SplitWord(word string) Frame {
	runes := []rune(word)
	var letterIdx []int
	for i, r := range runes {
		if unicode.IsLetter(r) {
			letterIdx = append(letterIdx, i)
		}
	}
	if len(letterIdx) == 0 {
		return Frame{Left: word}
	}
	center := letterIdx[(len(letterIdx)-1)/2]
	return Frame{
		Left:  string(runes[:center]),
		Focus: string(runes[center : center+1]),
		Right: string(runes[center+1:]),
	}
}
