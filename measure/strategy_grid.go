// CLAUDE:SUMMARY Fixed-coordinate strategy — per-template calibrated cell probing, the last resort.
package measure

import (
	"github.com/hazyhaar/cavex/pdfdoc"
)

// GridTemplate describes a vendor form with a constant row pitch and known
// column x-positions. Calibrated per template; the defaults match the most
// common reference form.
type GridTemplate struct {
	FirstRowY float64 `yaml:"first_row_y"` // top of the first data row
	RowPitch  float64 `yaml:"row_pitch"`   // vertical distance between rows
	MaxRows   int     `yaml:"max_rows"`    // probe limit per page
	Radius    float64 `yaml:"radius"`      // max distance from cell center to token center

	// Column x-centers; 0 disables a column.
	NoX        float64 `yaml:"no_x"`
	SymX       float64 `yaml:"sym_x"`
	DimensionX float64 `yaml:"dimension_x"`
	UpperX     float64 `yaml:"upper_x"`
	LowerX     float64 `yaml:"lower_x"`
	PosX       float64 `yaml:"pos_x"`
	VendorX    float64 `yaml:"vendor_x"`
}

// DefaultGridTemplate is calibrated against the reference inspection form.
func DefaultGridTemplate() GridTemplate {
	return GridTemplate{
		FirstRowY:  180,
		RowPitch:   18,
		MaxRows:    40,
		Radius:     9,
		NoX:        48,
		SymX:       80,
		DimensionX: 130,
		UpperX:     190,
		LowerX:     245,
		PosX:       305,
		VendorX:    380,
	}
}

// gridStrategy probes each expected cell position directly and reads back
// the nearest token. Used only for templates that defeat the general
// heuristics.
type gridStrategy struct {
	tpl    GridTemplate
	strict bool
}

func (gridStrategy) Name() string { return "fixed-coordinate" }

func (s gridStrategy) Extract(p PageView) []Record {
	if len(p.Words) == 0 || s.tpl.RowPitch <= 0 || s.tpl.MaxRows <= 0 {
		return nil
	}

	var records []Record
	misses := 0
	for i := 0; i < s.tpl.MaxRows && misses < 3; i++ {
		y := s.tpl.FirstRowY + float64(i)*s.tpl.RowPitch

		no := s.probe(p.Words, s.tpl.NoX, y)
		if !isDigits(no) {
			misses++
			continue
		}
		misses = 0

		rec := Record{
			No:               no,
			Sym:              s.probe(p.Words, s.tpl.SymX, y),
			Dimension:        numericOrEmpty(s.probe(p.Words, s.tpl.DimensionX, y)),
			Upper:            numericOrEmpty(s.probe(p.Words, s.tpl.UpperX, y)),
			Lower:            numericOrEmpty(s.probe(p.Words, s.tpl.LowerX, y)),
			Pos:              s.probe(p.Words, s.tpl.PosX, y),
			MeasuredByVendor: numericOrEmpty(s.probe(p.Words, s.tpl.VendorX, y)),
			Page:             p.Index,
		}
		if !isSymbol(rec.Sym) {
			rec.Sym = ""
		}
		if !isPositionTag(rec.Pos) {
			rec.Pos = ""
		}
		if s.strict && rec.MeasuredByVendor == "" {
			continue
		}
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records
}

// probe returns the text of the token whose center is nearest to (x, y)
// within the template radius, or "" when the cell is empty.
func (s gridStrategy) probe(tokens []pdfdoc.Token, x, y float64) string {
	if x <= 0 {
		return ""
	}
	best, bestDist := "", 2*s.tpl.Radius
	for _, t := range tokens {
		cx, cy := (t.X0+t.X1)/2, (t.Y0+t.Y1)/2
		dx, dy := abs(cx-x), abs(cy-y)
		if dx > s.tpl.Radius || dy > s.tpl.Radius {
			continue
		}
		if d := dx + dy; d < bestDist {
			best, bestDist = t.Text, d
		}
	}
	return best
}
