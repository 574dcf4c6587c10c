package insight

import (
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/vfpar/registro/internal/registry"
)

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt([]registry.Company{
		{Name: "Acme Ltda", Sector: "Varejo", Location: "São Paulo"},
		{Name: "Beta SA", Sector: "Tecnologia", Location: "Rio de Janeiro"},
	})
	want := "Analyze these companies and provide business insights:\n" +
		"- Acme Ltda (Varejo, São Paulo)\n" +
		"- Beta SA (Tecnologia, Rio de Janeiro)"
	if got != want {
		t.Fatalf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestDecode_Valid(t *testing.T) {
	got, err := Decode(`{"summary":"S","recommendations":["a","b","c"],"marketAnalysis":"M"}`)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Summary != "S" || got.MarketAnalysis != "M" || len(got.Recommendations) != 3 {
		t.Fatalf("Decode = %#v", got)
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":          `Here are some insights`,
		"missing field":     `{"summary":"S","recommendations":["a"]}`,
		"empty summary":     `{"summary":"","recommendations":["a"],"marketAnalysis":"M"}`,
		"wrong type":        `{"summary":"S","recommendations":"a","marketAnalysis":"M"}`,
		"unknown field":     `{"summary":"S","recommendations":["a"],"marketAnalysis":"M","extra":1}`,
		"trailing document": `{"summary":"S","recommendations":["a"],"marketAnalysis":"M"} {}`,
		"blank item":        `{"summary":"S","recommendations":[""],"marketAnalysis":"M"}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(input); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Decode error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"summary":`), genai.Text(`"S"}`)}},
		}},
	}
	got, err := responseText(resp)
	if err != nil {
		t.Fatalf("responseText returned error: %v", err)
	}
	if got != `{"summary":"S"}` {
		t.Fatalf("responseText = %q", got)
	}

	for _, empty := range []*genai.GenerateContentResponse{nil, {}, {Candidates: []*genai.Candidate{{}}}} {
		if _, err := responseText(empty); !errors.Is(err, ErrMalformed) {
			t.Fatalf("responseText(%#v) error = %v, want ErrMalformed", empty, err)
		}
	}
}

func TestResponseSchemaRequiresAllFields(t *testing.T) {
	schema := responseSchema()
	if schema.Type != genai.TypeObject || len(schema.Properties) != 3 || len(schema.Required) != 3 {
		t.Fatalf("schema = %#v, want object with 3 required properties", schema)
	}
	if schema.Properties["recommendations"].Items == nil {
		t.Fatalf("recommendations should declare item type")
	}
}
