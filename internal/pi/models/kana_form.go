package models

import (
	"errors"
	"fmt"

	"genpi/internal/kana"
)

// KanaForm selects how readings are rendered. It is chosen per request.
type KanaForm int

const (
	KanaFormHiragana KanaForm = iota
	KanaFormKatakana
	KanaFormHalfwidth
)

// ErrHalfwidthWithoutKatakana rejects the one invalid flag combination.
var ErrHalfwidthWithoutKatakana = errors.New("halfwidth is only valid with katakana")

// KanaFormFromFlags maps the katakana/halfwidth switches of the CLI and the
// HTTP query onto a KanaForm.
func KanaFormFromFlags(katakana, halfwidth bool) (KanaForm, error) {
	switch {
	case halfwidth && !katakana:
		return 0, ErrHalfwidthWithoutKatakana
	case halfwidth:
		return KanaFormHalfwidth, nil
	case katakana:
		return KanaFormKatakana, nil
	default:
		return KanaFormHiragana, nil
	}
}

// Apply renders a hiragana reading in the form.
func (f KanaForm) Apply(hiragana string) (string, error) {
	switch f {
	case KanaFormHiragana:
		if !kana.IsHiraganaString(hiragana) {
			return "", fmt.Errorf("%w: %q", kana.ErrNotHiragana, hiragana)
		}
		return hiragana, nil
	case KanaFormKatakana:
		return kana.ToKatakana(hiragana)
	case KanaFormHalfwidth:
		return kana.ToHalfwidth(hiragana)
	default:
		return "", fmt.Errorf("unknown kana form %d", int(f))
	}
}

func (f KanaForm) String() string {
	switch f {
	case KanaFormHiragana:
		return "hiragana"
	case KanaFormKatakana:
		return "katakana"
	case KanaFormHalfwidth:
		return "halfwidth"
	default:
		return fmt.Sprintf("KanaForm(%d)", int(f))
	}
}
