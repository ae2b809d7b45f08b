package search

import (
	"hash/fnv"
	"math"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
)

// Dimensions of the recipe embedding column.
const Dimensions = 64

// Embed folds weighted lexemes into a unit-length vector by feature hashing.
// Recipes that share lexemes land close to each other. It returns nil when
// there are no terms.
func Embed(terms []models.RecipeSearchTerm) *pgvector.Vector {
	if len(terms) == 0 {
		return nil
	}

	v := make([]float32, Dimensions)
	for _, t := range terms {
		h := fnv.New64a()
		h.Write([]byte(t.Lexeme))
		sum := h.Sum64()
		sign := float32(1)
		if sum>>63 == 1 {
			sign = -1
		}
		v[sum%Dimensions] += sign * float32(weightValue[t.Weight])
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}

	vec := pgvector.NewVector(v)
	return &vec
}

// Distance is the Euclidean distance between two vectors of equal length.
func Distance(a, b pgvector.Vector) float64 {
	x, y := a.Slice(), b.Slice()
	if len(x) != len(y) {
		return math.Inf(1)
	}
	var d float64
	for i := range x {
		diff := float64(x[i]) - float64(y[i])
		d += diff * diff
	}
	return math.Sqrt(d)
}
