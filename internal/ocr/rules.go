package ocr

import (
	"fmt"

	"github.com/konko2/letters-recognition/internal/detection"
)

// Signature is the partial feature pattern of one letter.
type Signature struct {
	Letter   string          `json:"letter"`
	Features map[string]bool `json:"features"`
}

// Matches reports whether every feature named by the signature has the
// required value in v.
func (s Signature) Matches(v detection.FeatureVector) bool {
	for name, want := range s.Features {
		if v[name] != want {
			return false
		}
	}
	return true
}

func signature(letter string, present, absent []string) Signature {
	s := Signature{Letter: letter, Features: make(map[string]bool, len(present)+len(absent))}
	for _, name := range present {
		s.Features[name] = true
	}
	for _, name := range absent {
		s.Features[name] = false
	}
	return s
}

const (
	left   = detection.LeftVerticalLine
	middle = detection.MiddleVerticalLine
	right  = detection.RightVerticalLine
	upper  = detection.UpperHorizontalLine
	bottom = detection.BottomHorizontalLine
	part1  = detection.FirstPartHorizontal
	part2  = detection.SecondPartHorizontal
	part3  = detection.ThirdPartHorizontal
	aLines = detection.ASloppingLines
	bRound = detection.BCircles
	cRound = detection.CCircle
	dBelly = detection.DBelly
	jHook  = detection.HookFromJ
)

// Table order is significant: the first matching letter wins.
var signatures = []Signature{
	signature("A",
		[]string{aLines, part2},
		[]string{left, middle, right, upper, bottom, bRound, cRound, dBelly, jHook}),
	signature("B",
		[]string{bRound, left},
		[]string{middle}),
	signature("C",
		[]string{cRound},
		[]string{part2, part3, middle, right, aLines, bRound, dBelly}),
	signature("D",
		[]string{dBelly, left},
		[]string{part2, middle, bRound}),
	signature("E",
		[]string{left, part1, part2, upper, bottom},
		[]string{middle, right, aLines, bRound}),
	signature("F",
		[]string{left, part1, part2, upper},
		[]string{middle, right, bottom, aLines, bRound, cRound, dBelly, jHook}),
	signature("G",
		[]string{cRound, part3},
		[]string{part1, middle, right, aLines, bRound, dBelly}),
	signature("H",
		[]string{left, right, part1, part2, part3},
		[]string{middle, upper, bottom, aLines, bRound, cRound, dBelly, jHook}),
	signature("I",
		[]string{middle, upper, bottom},
		[]string{part1, part3, left, right, aLines, bRound, cRound, dBelly, jHook}),
	signature("J",
		[]string{middle, jHook},
		[]string{part1, left, aLines, bRound, cRound, dBelly}),
}

// Signatures returns a copy of the letter table in match order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	for i, s := range signatures {
		features := make(map[string]bool, len(s.Features))
		for k, v := range s.Features {
			features[k] = v
		}
		out[i] = Signature{Letter: s.Letter, Features: features}
	}
	return out
}

// Match returns the first letter whose signature is consistent with v.
func Match(v detection.FeatureVector) (string, bool) {
	for _, s := range signatures {
		if s.Matches(v) {
			return s.Letter, true
		}
	}
	return None, false
}

// CheckSignatures verifies that no two signatures agree on every feature
// they both name, and that every named feature exists in the catalog.
func CheckSignatures(sigs []Signature) error {
	known := make(map[string]bool)
	for _, name := range detection.Catalog() {
		known[name] = true
	}
	for _, s := range sigs {
		for name := range s.Features {
			if !known[name] {
				return fmt.Errorf("signature %s: %w: %q", s.Letter, detection.ErrUnknownFeature, name)
			}
		}
	}

	for i := 0; i < len(sigs); i++ {
		for j := i + 1; j < len(sigs); j++ {
			if !distinguishable(sigs[i], sigs[j]) {
				return fmt.Errorf("signatures %s and %s are ambiguous", sigs[i].Letter, sigs[j].Letter)
			}
		}
	}
	return nil
}

func distinguishable(a, b Signature) bool {
	for name, va := range a.Features {
		if vb, ok := b.Features[name]; ok && va != vb {
			return true
		}
	}
	return false
}
