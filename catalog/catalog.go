// Package catalog resolves the three product creation modes onto the single
// Product shape: direct fixed-price entry, bulk generation of size variants,
// and length-based (continuous quantity) goods.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"dressshop-backend/models"
	"dressshop-backend/utils"

	"gorm.io/datatypes"
)

// Creation modes accepted by the product endpoint.
const (
	ModeFixed       = "fixed"
	ModeBulkSizes   = "bulk_sizes"
	ModeLengthBased = "length_based"
)

var ErrInvalidSpec = errors.New("invalid product spec")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// FixedSpec creates a single discrete-unit product.
type FixedSpec struct {
	Name          string
	CostPrice     float64
	SellingPrice  float64
	StockQuantity float64
	SchoolID      *string
	Tags          map[string]any
}

func (s FixedSpec) Products() ([]models.Product, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return nil, invalid("name is required")
	}
	if s.CostPrice < 0 || s.SellingPrice < 0 {
		return nil, invalid("prices must not be negative")
	}
	return []models.Product{{
		Name:          s.Name,
		CostPrice:     utils.Round2(s.CostPrice),
		SellingPrice:  utils.Round2(s.SellingPrice),
		StockQuantity: s.StockQuantity,
		Active:        true,
		PricingMode:   models.PricingFixed,
		SchoolID:      s.SchoolID,
		Tags:          datatypes.JSONMap(s.Tags),
	}}, nil
}

// BulkSizeSpec generates one product per size step in [SizeStart, SizeEnd].
// Variant i (0-based) is priced Base + i*PriceIncrement on both cost and
// selling price. Sizes are rounded to 2 decimals to avoid float drift.
type BulkSizeSpec struct {
	BaseName         string
	SizeStart        float64
	SizeEnd          float64
	SizeIncrement    float64
	BaseCostPrice    float64
	BaseSellingPrice float64
	PriceIncrement   float64
	StockPerVariant  float64
	SchoolID         *string
	Tags             map[string]any
}

func (s BulkSizeSpec) Products() ([]models.Product, error) {
	s.BaseName = strings.TrimSpace(s.BaseName)
	if s.BaseName == "" {
		return nil, invalid("base name is required")
	}
	if s.SizeIncrement <= 0 {
		return nil, invalid("size increment must be positive")
	}
	if s.SizeEnd < s.SizeStart {
		return nil, invalid("size range end %v is before start %v", s.SizeEnd, s.SizeStart)
	}
	if s.BaseCostPrice < 0 || s.BaseSellingPrice < 0 {
		return nil, invalid("prices must not be negative")
	}

	// 1e-9 guards against (end-start)/increment landing just under a whole step.
	count := int(math.Floor((s.SizeEnd-s.SizeStart)/s.SizeIncrement+1e-9)) + 1

	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		size := utils.Round2(s.SizeStart + float64(i)*s.SizeIncrement)
		sizeLabel := strconv.FormatFloat(size, 'f', -1, 64)

		tags := datatypes.JSONMap{}
		for k, v := range s.Tags {
			tags[k] = v
		}
		tags["size"] = sizeLabel
		tags["base_product"] = s.BaseName

		products = append(products, models.Product{
			Name:          fmt.Sprintf("%s - Size %s", s.BaseName, sizeLabel),
			CostPrice:     utils.Round2(s.BaseCostPrice + float64(i)*s.PriceIncrement),
			SellingPrice:  utils.Round2(s.BaseSellingPrice + float64(i)*s.PriceIncrement),
			StockQuantity: s.StockPerVariant,
			Active:        true,
			PricingMode:   models.PricingFixed,
			SchoolID:      s.SchoolID,
			Tags:          tags,
		})
	}
	return products, nil
}

// LengthSpec creates a continuous-quantity product sold by a unit of measure.
// SellingPrice is the rate per unit; StockQuantity is the measured amount on
// hand and may be fractional. CostPerUnit defaults to 0 (untracked cost).
type LengthSpec struct {
	Name          string
	RatePerUnit   float64
	CostPerUnit   float64
	StockQuantity float64
	Unit          string
	MinIncrement  float64
	SchoolID      *string
	Tags          map[string]any
}

func (s LengthSpec) Products() ([]models.Product, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.Unit = strings.TrimSpace(s.Unit)
	if s.Name == "" {
		return nil, invalid("name is required")
	}
	if s.Unit == "" {
		return nil, invalid("unit label is required for length-based products")
	}
	if s.MinIncrement <= 0 {
		return nil, invalid("minimum purchase increment must be positive")
	}
	if s.RatePerUnit < 0 || s.CostPerUnit < 0 {
		return nil, invalid("rates must not be negative")
	}
	return []models.Product{{
		Name:          s.Name,
		CostPrice:     utils.Round2(s.CostPerUnit),
		SellingPrice:  utils.Round2(s.RatePerUnit),
		StockQuantity: s.StockQuantity,
		Active:        true,
		PricingMode:   models.PricingLengthBased,
		Unit:          s.Unit,
		MinIncrement:  s.MinIncrement,
		SchoolID:      s.SchoolID,
		Tags:          datatypes.JSONMap(s.Tags),
	}}, nil
}
