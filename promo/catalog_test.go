package promo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return NewCatalog([]PromoCode{
		{Code: "SAVE10", Kind: KindFixedAmount, Value: d("10"), ExpiresAt: testNow.AddDate(0, 1, 0)},
		{Code: "FREESHIP", Kind: KindFreeDelivery, ExpiresAt: testNow.AddDate(0, 1, 0)},
	})
}

func TestCatalogFind(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Exact match", input: "SAVE10", want: "SAVE10"},
		{name: "Lowercase input", input: "save10", want: "SAVE10"},
		{name: "Mixed case with whitespace", input: "  Save10 ", want: "SAVE10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := catalog.Find(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Code)
		})
	}
}

func TestCatalogFindUnknown(t *testing.T) {
	_, err := testCatalog().Find("BOGUS")
	assert.ErrorIs(t, err, ErrPromoNotFound)
	// No partial matching.
	_, err = testCatalog().Find("SAVE")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promos.json")
	content := `[
		{
			"code": "WELCOME20",
			"kind": "PERCENTAGE",
			"value": "20",
			"max_discount_amount": "10",
			"expires_at": "2027-01-01T00:00:00Z"
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	p, err := catalog.Find("welcome20")
	require.NoError(t, err)
	assert.Equal(t, KindPercentage, p.Kind)
	assert.Equal(t, "20", p.Value.String())
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), p.ExpiresAt)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}
