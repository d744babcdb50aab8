// Package kana converts hiragana readings to katakana and half-width katakana.
package kana

import (
	"errors"
	"fmt"
	"strings"
)

const (
	hiraganaFirst rune = 0x3041 // ぁ
	hiraganaLast  rune = 0x3096 // ゖ

	// katakanaOffset is the distance between a hiragana code point and its
	// full-width katakana counterpart.
	katakanaOffset rune = 0x60
)

// ErrNotHiragana is returned when input contains a rune outside U+3041–U+3096.
var ErrNotHiragana = errors.New("not hiragana")

// IsHiragana reports whether r lies in the convertible hiragana range.
func IsHiragana(r rune) bool {
	return r >= hiraganaFirst && r <= hiraganaLast
}

// IsHiraganaString reports whether every rune of s is hiragana. The empty
// string is hiragana.
func IsHiraganaString(s string) bool {
	for _, r := range s {
		if !IsHiragana(r) {
			return false
		}
	}
	return true
}

// ToKatakana maps each hiragana rune to full-width katakana.
func ToKatakana(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !IsHiragana(r) {
			return "", notHiragana(r)
		}
		b.WriteRune(r + katakanaOffset)
	}
	return b.String(), nil
}

// ToHalfwidth maps each hiragana rune to half-width katakana. Voiced and
// semi-voiced syllables become two runes: the base plus ﾞ or ﾟ.
func ToHalfwidth(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !IsHiragana(r) {
			return "", notHiragana(r)
		}
		b.WriteString(halfwidth[r-hiraganaFirst])
	}
	return b.String(), nil
}

func notHiragana(r rune) error {
	return fmt.Errorf("%w: %q (U+%04X)", ErrNotHiragana, r, r)
}
