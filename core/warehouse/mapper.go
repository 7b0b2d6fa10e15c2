// Package warehouse holds the dashboard's relational CRUD helpers: the
// SKU-to-MSKU mapper and the query history log. Both sit on the same
// store the query engine executes against.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/stocklens/stocklens/core/infrastructure/logging"
	apperrors "github.com/stocklens/stocklens/core/shared/errors"
	"github.com/stocklens/stocklens/core/store"
)

// ComboSeparator joins the parts of a combo SKU ("SKU1+SKU2")
const ComboSeparator = "+"

// Mapping is one marketplace SKU mapped to a canonical master SKU
type Mapping struct {
	SKU         string `json:"sku"`
	MSKU        string `json:"msku"`
	Marketplace string `json:"marketplace"`
}

// Mapper resolves marketplace SKUs to master SKUs
type Mapper struct {
	store store.Store
	log   *logging.Logger
}

// NewMapper creates a mapper over the store
func NewMapper(s store.Store) *Mapper {
	return &Mapper{store: s, log: logging.New("warehouse:mapper")}
}

// GetMSKU resolves a SKU to its MSKU. Combo SKUs resolve part by part and
// the resulting MSKUs are rejoined with the same separator; if any part is
// unmapped the whole combo is unresolved.
func (m *Mapper) GetMSKU(ctx context.Context, sku string) (string, error) {
	if msku, err := m.lookup(ctx, sku); err != nil {
		return "", err
	} else if msku != "" {
		return msku, nil
	}

	if strings.Contains(sku, ComboSeparator) {
		return m.resolveCombo(ctx, sku)
	}

	m.log.Warnf("No mapping found for SKU: %s", sku)
	return "", apperrors.NewAppError(apperrors.ErrCodeMappingNotFound,
		fmt.Sprintf("no mapping for SKU '%s'", sku), nil)
}

func (m *Mapper) resolveCombo(ctx context.Context, comboSKU string) (string, error) {
	parts := strings.Split(comboSKU, ComboSeparator)
	mskus := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		msku, err := m.lookup(ctx, part)
		if err != nil {
			return "", err
		}
		if msku == "" {
			m.log.Warnf("No mapping found for SKU %s in combo %s", part, comboSKU)
			return "", apperrors.NewAppError(apperrors.ErrCodeMappingNotFound,
				fmt.Sprintf("no mapping for SKU '%s' in combo '%s'", part, comboSKU), nil)
		}
		mskus = append(mskus, msku)
	}

	combined := strings.Join(mskus, ComboSeparator)
	m.log.Infof("Mapped combo SKU %s to %s", comboSKU, combined)
	return combined, nil
}

func (m *Mapper) lookup(ctx context.Context, sku string) (string, error) {
	result, err := m.store.Query(ctx, "SELECT msku FROM sku_mappings WHERE sku = ?", sku)
	if err != nil {
		return "", fmt.Errorf("mapping lookup failed: %w", err)
	}
	if result.Len() == 0 {
		return "", nil
	}
	msku, _ := result.Rows[0]["msku"].(string)
	return msku, nil
}

// AddMapping inserts or replaces a SKU mapping
func (m *Mapper) AddMapping(ctx context.Context, mapping Mapping) error {
	if mapping.SKU == "" || mapping.MSKU == "" {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput,
			"sku and msku are required", nil)
	}
	if mapping.Marketplace == "" {
		mapping.Marketplace = m.IdentifyMarketplace(mapping.SKU)
	}

	err := m.store.Exec(ctx,
		"INSERT OR REPLACE INTO sku_mappings (sku, msku, marketplace) VALUES (?, ?, ?)",
		mapping.SKU, mapping.MSKU, mapping.Marketplace)
	if err != nil {
		return fmt.Errorf("failed to add mapping: %w", err)
	}

	m.log.Infof("Added mapping %s -> %s (%s)", mapping.SKU, mapping.MSKU, mapping.Marketplace)
	return nil
}

// DeleteMapping removes a SKU mapping
func (m *Mapper) DeleteMapping(ctx context.Context, sku string) error {
	if err := m.store.Exec(ctx, "DELETE FROM sku_mappings WHERE sku = ?", sku); err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}
	return nil
}

// SKUsForMSKU lists every marketplace SKU mapped to the given MSKU
func (m *Mapper) SKUsForMSKU(ctx context.Context, msku string) ([]Mapping, error) {
	result, err := m.store.Query(ctx,
		"SELECT sku, msku, marketplace FROM sku_mappings WHERE msku = ? ORDER BY sku", msku)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	return rowsToMappings(result), nil
}

// AllMappings lists every known mapping
func (m *Mapper) AllMappings(ctx context.Context) ([]Mapping, error) {
	result, err := m.store.Query(ctx,
		"SELECT sku, msku, marketplace FROM sku_mappings ORDER BY sku")
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	return rowsToMappings(result), nil
}

// IdentifyMarketplace guesses the marketplace from the SKU's shape
func (m *Mapper) IdentifyMarketplace(sku string) string {
	upper := strings.ToUpper(sku)
	switch {
	case strings.HasPrefix(upper, "AMZ"), strings.HasPrefix(upper, "B0"):
		return "amazon"
	case strings.HasPrefix(upper, "FK"), strings.HasPrefix(upper, "FLIP"):
		return "flipkart"
	case strings.HasPrefix(upper, "MSH"), strings.HasPrefix(upper, "ME"):
		return "meesho"
	default:
		return "unknown"
	}
}

func rowsToMappings(result *store.Result) []Mapping {
	mappings := make([]Mapping, 0, result.Len())
	for _, row := range result.Rows {
		mapping := Mapping{}
		mapping.SKU, _ = row["sku"].(string)
		mapping.MSKU, _ = row["msku"].(string)
		mapping.Marketplace, _ = row["marketplace"].(string)
		mappings = append(mappings, mapping)
	}
	return mappings
}
