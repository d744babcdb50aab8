package models

import (
	"errors"
	"fmt"
	"strings"

	"genpi/internal/kana"
)

// Name is a kanji name with its hiragana reading.
type Name struct {
	LastName      string `json:"last_name"`
	LastNameKana  string `json:"last_name_kana"`
	FirstName     string `json:"first_name"`
	FirstNameKana string `json:"first_name_kana"`
}

// NewName trims every field and requires non-empty hiragana readings.
func NewName(lastName, lastNameKana, firstName, firstNameKana string) (Name, error) {
	n := Name{
		LastName:      strings.TrimSpace(lastName),
		LastNameKana:  strings.TrimSpace(lastNameKana),
		FirstName:     strings.TrimSpace(firstName),
		FirstNameKana: strings.TrimSpace(firstNameKana),
	}
	if n.LastName == "" || n.FirstName == "" {
		return Name{}, errors.New("name: empty surname or given name")
	}
	if n.LastNameKana == "" || !kana.IsHiraganaString(n.LastNameKana) {
		return Name{}, fmt.Errorf("name: surname reading %q: %w", n.LastNameKana, kana.ErrNotHiragana)
	}
	if n.FirstNameKana == "" || !kana.IsHiraganaString(n.FirstNameKana) {
		return Name{}, fmt.Errorf("name: given name reading %q: %w", n.FirstNameKana, kana.ErrNotHiragana)
	}
	return n, nil
}

// InKanaForm returns a copy whose readings are rendered in form.
func (n Name) InKanaForm(form KanaForm) (Name, error) {
	last, err := form.Apply(n.LastNameKana)
	if err != nil {
		return Name{}, fmt.Errorf("surname reading: %w", err)
	}
	first, err := form.Apply(n.FirstNameKana)
	if err != nil {
		return Name{}, fmt.Errorf("given name reading: %w", err)
	}
	n.LastNameKana = last
	n.FirstNameKana = first
	return n, nil
}
