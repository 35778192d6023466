package normalisers

import (
	"sort"
	"strings"
	"unicode"
)

// Step is one canonicalization pass over the text.
// Steps form a pipeline and run in Order() sequence (lower = earlier).
type Step interface {
	// Apply transforms the text. Must be pure and idempotent.
	Apply(text string) string

	// Name returns the step name for logging/debugging.
	Name() string

	// Order returns the step position in the pipeline.
	Order() int
}

// Pipeline applies an ordered sequence of normalization steps.
// The full pipeline is idempotent: running it twice yields the same output.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add adds a step. Steps are sorted by Order() before applying.
func (p *Pipeline) Add(step Step) {
	p.steps = append(p.steps, step)
	sort.SliceStable(p.steps, func(i, j int) bool {
		return p.steps[i].Order() < p.steps[j].Order()
	})
}

// List returns step names in execution order.
func (p *Pipeline) List() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name())
	}
	return names
}

// Apply runs every step in order. Empty input yields empty output.
func (p *Pipeline) Apply(text string) string {
	for _, s := range p.steps {
		text = s.Apply(text)
	}
	return text
}

// DefaultPipeline builds the canonical Arabic normalization pipeline used for
// embedding and duplicate comparison. The step order matters: folding runs
// before punctuation stripping, whitespace collapsing runs last.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Add(&DiacriticStripper{})
	p.Add(&AlefFolder{})
	p.Add(&LetterFolder{})
	p.Add(&TatweelStripper{})
	p.Add(&PunctuationStripper{})
	p.Add(&WhitespaceCollapser{})
	return p
}

// Normalize applies the default pipeline. Convenience for callers that do not
// need a custom step set.
func Normalize(text string) string {
	return defaultPipeline.Apply(text)
}

var defaultPipeline = DefaultPipeline()

// DiacriticStripper removes Arabic short-vowel and sukun combining marks
// (U+064B through U+0652).
type DiacriticStripper struct{}

func (s *DiacriticStripper) Name() string { return "diacritics" }
func (s *DiacriticStripper) Order() int   { return 0 }

func (s *DiacriticStripper) Apply(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ً' && r <= 'ْ' {
			return -1
		}
		return r
	}, text)
}

// AlefFolder folds alef with hamza above, hamza below, and madda to bare alef.
type AlefFolder struct{}

func (s *AlefFolder) Name() string { return "alef" }
func (s *AlefFolder) Order() int   { return 1 }

func (s *AlefFolder) Apply(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'إ', 'أ', 'آ':
			return 'ا'
		}
		return r
	}, text)
}

// LetterFolder folds alef maksura to yeh and teh marbuta to heh.
type LetterFolder struct{}

func (s *LetterFolder) Name() string { return "letters" }
func (s *LetterFolder) Order() int   { return 2 }

func (s *LetterFolder) Apply(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'ى':
			return 'ي'
		case 'ة':
			return 'ه'
		}
		return r
	}, text)
}

// TatweelStripper removes the tatweel (kashida) elongation character.
type TatweelStripper struct{}

func (s *TatweelStripper) Name() string { return "tatweel" }
func (s *TatweelStripper) Order() int   { return 3 }

func (s *TatweelStripper) Apply(text string) string {
	return strings.ReplaceAll(text, "ـ", "")
}

// PunctuationStripper drops everything except word characters (letters,
// digits, underscore) and whitespace.
type PunctuationStripper struct{}

func (s *PunctuationStripper) Name() string { return "punctuation" }
func (s *PunctuationStripper) Order() int   { return 4 }

func (s *PunctuationStripper) Apply(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

// WhitespaceCollapser collapses runs of whitespace to a single space and trims
// the ends.
type WhitespaceCollapser struct{}

func (s *WhitespaceCollapser) Name() string { return "whitespace" }
func (s *WhitespaceCollapser) Order() int   { return 5 }

func (s *WhitespaceCollapser) Apply(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
