// Package importer loads recipes from the dataset CSV export. Parsing is a
// pure function of the input; Loader writes the parsed rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Column names of the dataset export.
const (
	colRecipeID     = "RecipeId"
	colName         = "Name"
	colCookMins     = "CookMins"
	colPrepMins     = "PrepMins"
	colTotalMins    = "TotalMins"
	colCategory     = "RecipeCategory"
	colCalories     = "Calories"
	colFat          = "FatContent"
	colSaturatedFat = "SaturatedFatContent"
	colCholesterol  = "CholesterolContent"
	colSodium       = "SodiumContent"
	colCarbohydrate = "CarbohydrateContent"
	colFiber        = "FiberContent"
	colSugar        = "SugarContent"
	colProtein      = "ProteinContent"
	colKeywords     = "Keywords"
	colImages       = "Images"
	colInstructions = "RecipeInstructions"
	colIngredients  = "IngredientList"
	colQuantities   = "Quantities"
)

var requiredColumns = []string{colRecipeID, colName}

// Row is one parsed CSV record.
type Row struct {
	Line                int
	RecipeID            int64
	Name                string
	Category            string
	CookMins            *float64
	PrepMins            *float64
	TotalMins           *float64
	Calories            *float64
	FatContent          *float64
	SaturatedFatContent *float64
	CholesterolContent  *float64
	SodiumContent       *float64
	CarbohydrateContent *float64
	FiberContent        *float64
	SugarContent        *float64
	ProteinContent      *float64
	Keywords            []string
	Images              []string
	Instructions        string
	Ingredients         []IngredientQty
}

// IngredientQty is an ingredient name with its free-form quantity.
type IngredientQty struct {
	Name     string
	Quantity string
}

// RowError reports a record that could not be parsed. The reader moves on to
// the next record.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Reader yields parsed rows from a CSV export with a header line.
type Reader struct {
	csv   *csv.Reader
	index map[string]int
}

// NewReader reads the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty CSV: missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return &Reader{csv: cr, index: index}, nil
}

// Next returns the next row, io.EOF at the end, or a *RowError for a record
// that is malformed.
func (r *Reader) Next() (*Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &RowError{Line: parseErr.StartLine, Err: parseErr.Err}
		}
		return nil, fmt.Errorf("read row: %w", err)
	}
	line, _ := r.csv.FieldPos(0)

	row, err := r.parse(record)
	if err != nil {
		return nil, &RowError{Line: line, Err: err}
	}
	row.Line = line
	return row, nil
}

func (r *Reader) field(record []string, col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (r *Reader) parse(record []string) (*Row, error) {
	id, err := strconv.ParseInt(r.field(record, colRecipeID), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s %q", colRecipeID, r.field(record, colRecipeID))
	}
	name := r.field(record, colName)
	if name == "" {
		return nil, fmt.Errorf("recipe %d has no name", id)
	}

	row := &Row{
		RecipeID:     id,
		Name:         name,
		Category:     r.field(record, colCategory),
		Instructions: r.field(record, colInstructions),
	}

	numbers := []struct {
		col string
		dst **float64
	}{
		{colCookMins, &row.CookMins},
		{colPrepMins, &row.PrepMins},
		{colTotalMins, &row.TotalMins},
		{colCalories, &row.Calories},
		{colFat, &row.FatContent},
		{colSaturatedFat, &row.SaturatedFatContent},
		{colCholesterol, &row.CholesterolContent},
		{colSodium, &row.SodiumContent},
		{colCarbohydrate, &row.CarbohydrateContent},
		{colFiber, &row.FiberContent},
		{colSugar, &row.SugarContent},
		{colProtein, &row.ProteinContent},
	}
	for _, n := range numbers {
		v, err := parseNumber(r.field(record, n.col))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.col, err)
		}
		*n.dst = v
	}

	if row.Keywords, err = parseList(r.field(record, colKeywords)); err != nil {
		return nil, fmt.Errorf("%s: %w", colKeywords, err)
	}
	if row.Images, err = parseList(r.field(record, colImages)); err != nil {
		return nil, fmt.Errorf("%s: %w", colImages, err)
	}
	names, err := parseList(r.field(record, colIngredients))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", colIngredients, err)
	}
	quantities, err := parseList(r.field(record, colQuantities))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", colQuantities, err)
	}

	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(n)]; dup {
			continue
		}
		seen[strings.ToLower(n)] = struct{}{}
		qty := ""
		if i < len(quantities) {
			qty = quantities[i]
		}
		row.Ingredients = append(row.Ingredients, IngredientQty{Name: n, Quantity: qty})
	}
	return row, nil
}

// parseNumber reads an optional number. Empty and NA cells are nil.
func parseNumber(s string) (*float64, error) {
	if s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	return &f, nil
}

// parseList reads a JSON array cell. Null values inside the array become
// empty strings; an empty cell is an empty list.
func parseList(s string) ([]string, error) {
	if s == "" || s == "null" {
		return []string{}, nil
	}
	var raw []*string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON list: %w", err)
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		if v != nil {
			out[i] = strings.TrimSpace(*v)
		}
	}
	return out, nil
}
