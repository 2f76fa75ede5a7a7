package promo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog is an immutable case-insensitive lookup table of promo codes,
// built once at startup. A real deployment would source this from a backend;
// here it is loaded from configuration.
type Catalog struct {
	codes map[string]PromoCode
}

// NewCatalog builds a catalog from a static list. Codes are matched
// case-insensitively; later duplicates overwrite earlier ones.
func NewCatalog(codes []PromoCode) Catalog {
	m := make(map[string]PromoCode, len(codes))
	for _, p := range codes {
		m[normalize(p.Code)] = p
	}
	return Catalog{codes: m}
}

// LoadCatalog reads a JSON array of promo codes from a file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read promo catalog: %w", err)
	}
	var codes []PromoCode
	if err := json.Unmarshal(data, &codes); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse promo catalog: %w", err)
	}
	return NewCatalog(codes), nil
}

// Find matches a user-entered code string, case-insensitively and with
// surrounding whitespace ignored. No partial or fuzzy matching.
func (c Catalog) Find(code string) (PromoCode, error) {
	p, ok := c.codes[normalize(code)]
	if !ok {
		return PromoCode{}, fmt.Errorf("%w: %q", ErrPromoNotFound, code)
	}
	return p, nil
}

// Codes returns the catalog contents for passing into a workflow input.
func (c Catalog) Codes() []PromoCode {
	out := make([]PromoCode, 0, len(c.codes))
	for _, p := range c.codes {
		out = append(out, p)
	}
	return out
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
