// Package insight asks a language model for business insights about a set of
// companies. It is independent of the browsing state: a failed call only
// affects the caller.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vfpar/registro/internal/registry"
)

// Insight is the structured answer of the model.
type Insight struct {
	Summary         string   `json:"summary" validate:"required"`
	Recommendations []string `json:"recommendations" validate:"required,dive,required"`
	MarketAnalysis  string   `json:"marketAnalysis" validate:"required"`
}

// Generator produces insights for a collection.
type Generator interface {
	Generate(ctx context.Context, companies []registry.Company) (Insight, error)
}

// ErrMalformed wraps every response that does not match the Insight schema.
var ErrMalformed = errors.New("malformed insight response")

// ErrNoCompanies is returned when there is nothing to analyze.
var ErrNoCompanies = errors.New("no companies to analyze")

const promptHeader = "Analyze these companies and provide business insights:"

// BuildPrompt renders the collection as a compact list, one company per line.
func BuildPrompt(companies []registry.Company) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, c := range companies {
		fmt.Fprintf(&b, "\n- %s (%s, %s)", c.Name, c.Sector, c.Location)
	}
	return b.String()
}

var validate = validator.New()

// Decode parses a model response. Unknown keys, missing fields and trailing
// data are all rejected.
func Decode(text string) (Insight, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	dec.DisallowUnknownFields()

	var out Insight
	if err := dec.Decode(&out); err != nil {
		return Insight{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return Insight{}, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if err := validate.Struct(out); err != nil {
		return Insight{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
