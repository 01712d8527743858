package roseingrave

import "fmt"

// PieceRecord is the input shape for a piece definition.
type PieceRecord struct {
	Title    string         `yaml:"title" json:"title"`
	Link     string         `yaml:"link,omitempty" json:"link,omitempty"`
	BarCount *int           `yaml:"barCount,omitempty" json:"barCount,omitempty"`
	Sources  []SourceRecord `yaml:"sources" json:"sources"`
}

// Piece is a musical work being tracked, with one or more contribution
// sources. Source iteration order matches first-insertion order; column
// order in the built sheets depends on it.
type Piece struct {
	name     string
	link     string
	barCount *int
	names    []string           // source names in insertion order
	byName   map[string]*Source // source lookup
	template *Template
}

// NewPiece builds a Piece from an input record. The title and sources keys
// are required; a source that fails validation aborts construction with the
// error tagged by that source's index.
func NewPiece(rec PieceRecord, tmpl *Template) (*Piece, error) {
	if rec.Title == "" {
		return nil, newValidationError("title", "key not found")
	}
	if rec.Sources == nil {
		return nil, newValidationError("sources", "key not found")
	}
	if rec.BarCount != nil && *rec.BarCount <= 0 {
		return nil, newValidationError("barCount", "bar count must be positive")
	}

	p := &Piece{
		name:     rec.Title,
		link:     rec.Link,
		barCount: copyBarCount(rec.BarCount),
		byName:   make(map[string]*Source),
		template: tmpl,
	}
	for i, sr := range rec.Sources {
		source, err := NewSource(sr)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		p.AddSource(source)
	}
	return p, nil
}

// Name returns the piece title.
func (p *Piece) Name() string { return p.name }

// Link returns the piece link, or "" if unset.
func (p *Piece) Link() string { return p.link }

// Sources returns the sources in insertion order.
func (p *Piece) Sources() []*Source {
	sources := make([]*Source, len(p.names))
	for i, name := range p.names {
		sources[i] = p.byName[name]
	}
	return sources
}

// HasSource reports whether this piece has a source with the given name.
func (p *Piece) HasSource(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// GetSource returns the source with the given name, or nil.
func (p *Piece) GetSource(name string) *Source {
	return p.byName[name]
}

// FinalBarCount returns the piece bar count, falling back to the template
// default when unset.
func (p *Piece) FinalBarCount() int {
	if p.barCount == nil {
		return p.template.Values.DefaultBarCount
	}
	return *p.barCount
}

// AddSource adds a source to this piece. If a source with the same name
// already exists, the two are combined instead. The piece bar count is
// refreshed to the max of the current value and the source's.
func (p *Piece) AddSource(source *Source) {
	name := source.Name()
	if existing, ok := p.byName[name]; ok {
		existing.Combine(source)
	} else {
		p.names = append(p.names, name)
		p.byName[name] = source
	}
	p.barCount = maxBarCount(p.barCount, source.barCount)
}

// Combine merges another piece into this one: the link is filled in only if
// currently unset, and every source of the other piece is folded in.
func (p *Piece) Combine(other *Piece) {
	if p.link == "" {
		p.link = other.link
	}
	for _, source := range other.Sources() {
		p.AddSource(source)
	}
}

// Hyperlink returns the hyperlink formula for this piece's title cell.
func (p *Piece) Hyperlink() string {
	return EncodeHyperlink(p.name, p.link)
}
