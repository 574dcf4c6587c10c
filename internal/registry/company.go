package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const createdAtLayout = "2006-01-02 15:04:05"

// Company mirrors one record served by the company data source.
type Company struct {
	ID            int64    `json:"id"`
	Name          string   `json:"nome"`
	Sector        string   `json:"setor"`
	Location      string   `json:"localizacao"`
	TaxID         string   `json:"cnpj,omitempty"`
	Description   string   `json:"descricao,omitempty"`
	AnnualRevenue *float64 `json:"faturamento_anual,omitempty"`
	EmployeeCount *int64   `json:"numero_funcionarios,omitempty"`
	Website       string   `json:"site,omitempty"`
	LogoURL       string   `json:"logo_url,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	Extra         *Extra   `json:"extra,omitempty"`

	// Attributes holds keys the source sent that are not modelled above.
	Attributes map[string]any `json:"-"`
}

// Extra carries the nested address and classification block.
type Extra struct {
	PostalCode   string `json:"cep,omitempty"`
	Region       string `json:"regiao,omitempty"`
	Kind         string `json:"tipo,omitempty"`
	FullAddress  string `json:"endereco_completo,omitempty"`
	Municipality string `json:"municipio,omitempty"`
	StateCode    string `json:"uf,omitempty"`
}

var knownKeys = map[string]struct{}{
	"id": {}, "nome": {}, "setor": {}, "localizacao": {}, "cnpj": {}, "descricao": {},
	"faturamento_anual": {}, "numero_funcionarios": {}, "site": {}, "logo_url": {},
	"created_at": {}, "extra": {},
}

// companyFields breaks the MarshalJSON/UnmarshalJSON recursion.
type companyFields Company

// UnmarshalJSON decodes the modelled fields and keeps every other key in
// Attributes.
func (c *Company) UnmarshalJSON(data []byte) error {
	var fields companyFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if _, ok := knownKeys[key]; ok {
			continue
		}
		var decoded any
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return fmt.Errorf("decode attribute %q: %w", key, err)
		}
		if fields.Attributes == nil {
			fields.Attributes = make(map[string]any)
		}
		fields.Attributes[key] = decoded
	}
	*c = Company(fields)
	return nil
}

// MarshalJSON writes the modelled fields followed by the extension attributes.
// Attributes never override a modelled key.
func (c Company) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(companyFields(c))
	if err != nil {
		return nil, err
	}
	if len(c.Attributes) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage, len(c.Attributes)+len(knownKeys))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range c.Attributes {
		if _, ok := merged[key]; ok {
			continue
		}
		if _, ok := knownKeys[key]; ok {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode attribute %q: %w", key, err)
		}
		merged[key] = encoded
	}
	return json.Marshal(merged)
}

// DecodeCollection parses a JSON array of company records.
func DecodeCollection(data []byte) ([]Company, error) {
	var companies []Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// IsHeadquarters reports whether the record is flagged as the group's head office.
func (c Company) IsHeadquarters() bool {
	return c.Extra != nil && strings.EqualFold(strings.TrimSpace(c.Extra.Kind), KindHeadquarters)
}

// Initial returns the first letter of the name, used in place of a logo.
func (c Company) Initial() string {
	name := strings.TrimSpace(c.Name)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// ParsedCreatedAt returns the creation timestamp when the source sent one.
func (c Company) ParsedCreatedAt() time.Time {
	value := strings.TrimSpace(c.CreatedAt)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(createdAtLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// AttributeKeys returns the extension attribute names in sorted order.
func (c Company) AttributeKeys() []string {
	if len(c.Attributes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Attributes))
	for key := range c.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e *Extra) value(pick func(Extra) string) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(pick(*e))
}

// Clone returns a deep copy of c so the copy shares no pointers or maps with
// the original.
func (c Company) Clone() Company {
	out := c
	if c.AnnualRevenue != nil {
		v := *c.AnnualRevenue
		out.AnnualRevenue = &v
	}
	if c.EmployeeCount != nil {
		v := *c.EmployeeCount
		out.EmployeeCount = &v
	}
	if c.Extra != nil {
		e := *c.Extra
		out.Extra = &e
	}
	if c.Attributes != nil {
		out.Attributes = make(map[string]any, len(c.Attributes))
		for k, v := range c.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}
