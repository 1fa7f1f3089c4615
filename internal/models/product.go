package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ProductID identifies a catalog product. Catalog files and LLM output use
// both string and numeric ids, so either JSON form is accepted and kept as
// its literal text.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return fmt.Errorf("product id must be a string or a number, got %s", trimmed)
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("product id must be a string or a number: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) String() string {
	return string(id)
}

// Product is a read-only catalog record. Fields outside the ones below are
// kept in the original record and written back out unchanged.
type Product struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    float64   `json:"price"`
	Brand    string    `json:"brand"`

	raw json.RawMessage
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plainProduct Product
	var decoded plainProduct
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*p = Product(decoded)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type plainProduct Product
	return json.Marshal(plainProduct(p))
}
