package roseingrave

// SourceRecord is the input shape for a single contribution source.
type SourceRecord struct {
	Name     string `yaml:"name" json:"name"`
	Link     string `yaml:"link" json:"link"`
	BarCount *int   `yaml:"barCount,omitempty" json:"barCount,omitempty"`
}

// Source is one contribution source (e.g. a recording) within a piece.
type Source struct {
	name     string
	link     string
	barCount *int // nil = unset; positive when set
}

// NewSource builds a Source from an input record. The name and link are
// required, and a supplied bar count must be positive.
func NewSource(rec SourceRecord) (*Source, error) {
	if rec.Name == "" {
		return nil, newValidationError("name", "key not found")
	}
	if rec.Link == "" {
		return nil, newValidationError("link", "key not found")
	}
	if rec.BarCount != nil && *rec.BarCount <= 0 {
		return nil, newValidationError("barCount", "bar count must be positive")
	}
	return &Source{name: rec.Name, link: rec.Link, barCount: copyBarCount(rec.BarCount)}, nil
}

// Name returns the source name, its identity key within a piece.
func (s *Source) Name() string { return s.name }

// Link returns the source link.
func (s *Source) Link() string { return s.link }

// BarCount returns the source bar count, or nil if unset.
func (s *Source) BarCount() *int { return copyBarCount(s.barCount) }

// Combine merges another same-named source into this one by taking the
// maximum of the two bar counts. Name and link are untouched.
func (s *Source) Combine(other *Source) {
	s.barCount = maxBarCount(s.barCount, other.barCount)
}

// Hyperlink returns the hyperlink formula for this source's header cell.
func (s *Source) Hyperlink() string {
	return EncodeHyperlink(s.name, s.link)
}

// Record returns the input-record form of this source.
func (s *Source) Record() SourceRecord {
	return SourceRecord{Name: s.name, Link: s.link, BarCount: copyBarCount(s.barCount)}
}

// maxBarCount returns the max of two optional bar counts, where absence is
// the identity: nil if both are nil, the set one if only one is set.
func maxBarCount(a, b *int) *int {
	if a == nil {
		return copyBarCount(b)
	}
	if b == nil {
		return copyBarCount(a)
	}
	if *a >= *b {
		return copyBarCount(a)
	}
	return copyBarCount(b)
}

func copyBarCount(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
