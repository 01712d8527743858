package roseingrave

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPieces reads a pieces-definition file (yaml or json): a list of piece
// records. Records sharing a title are folded into one piece; first
// appearance decides piece order.
func LoadPieces(path string, tmpl *Template) ([]*Piece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pieces file: %w", err)
	}
	var records []PieceRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse pieces file: %w", err)
	}
	return BuildPieces(records, tmpl)
}

// BuildPieces constructs pieces from records, combining duplicate titles.
func BuildPieces(records []PieceRecord, tmpl *Template) ([]*Piece, error) {
	var pieces []*Piece
	byTitle := make(map[string]*Piece)
	for i, rec := range records {
		piece, err := NewPiece(rec, tmpl)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		if existing, ok := byTitle[piece.Name()]; ok {
			existing.Combine(piece)
			continue
		}
		byTitle[piece.Name()] = piece
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// LoadPieceData reads an aggregated contribution-data file: a mapping of
// piece title to that piece's contribution data.
func LoadPieceData(path string) (map[string]*PieceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read piece data file: %w", err)
	}
	var byTitle map[string]*PieceData
	if err := yaml.Unmarshal(data, &byTitle); err != nil {
		return nil, fmt.Errorf("parse piece data file: %w", err)
	}
	return byTitle, nil
}
