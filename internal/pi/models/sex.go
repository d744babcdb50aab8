package models

import (
	"fmt"

	"genpi/pkg/platform/random"
)

// Sex is the sex of a generated person.
type Sex int

const (
	SexFemale Sex = iota
	SexMale
)

// AllSexes lists every variant, in declaration order.
var AllSexes = []Sex{SexFemale, SexMale}

// RandomSex draws a Sex uniformly.
func RandomSex() Sex {
	return random.Pick(AllSexes)
}

// String returns the lowercase token used on the wire.
func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "female"
	case SexMale:
		return "male"
	default:
		return fmt.Sprintf("Sex(%d)", int(s))
	}
}

// ParseSex parses the lowercase token produced by String.
func ParseSex(token string) (Sex, error) {
	switch token {
	case "female":
		return SexFemale, nil
	case "male":
		return SexMale, nil
	default:
		return 0, fmt.Errorf("unknown sex %q", token)
	}
}

func (s Sex) MarshalText() ([]byte, error) {
	if s != SexFemale && s != SexMale {
		return nil, fmt.Errorf("invalid sex %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Sex) UnmarshalText(text []byte) error {
	parsed, err := ParseSex(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
