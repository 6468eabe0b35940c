// Package prize defines the prize record model and the forward migration
// applied to records loaded from the store.
package prize

import (
	"github.com/google/uuid"
)

// Category classifies a prize. The set is fixed; records loaded with an
// unset category fall back to CategoryOther.
type Category string

const (
	CategoryPlush       Category = "plush"
	CategoryFigure      Category = "figure"
	CategoryKeychain    Category = "keychain"
	CategoryElectronics Category = "electronics"
	CategoryCandy       Category = "candy"
	CategoryOther       Category = "other"

	// CategoryAll is the filter sentinel meaning "no category filter".
	// It is never stored on a record.
	CategoryAll Category = "all"
)

// Categories lists the storable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPlush,
		CategoryFigure,
		CategoryKeychain,
		CategoryElectronics,
		CategoryCandy,
		CategoryOther,
	}
}

// Valid reports whether c is a storable category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlush, CategoryFigure, CategoryKeychain,
		CategoryElectronics, CategoryCandy, CategoryOther:
		return true
	}
	return false
}

// Manufacturer identifies the prize maker. Optional on input; records
// without one default to ManufacturerUnknown.
type Manufacturer string

const (
	ManufacturerBandai    Manufacturer = "bandai"
	ManufacturerBanpresto Manufacturer = "banpresto"
	ManufacturerSega      Manufacturer = "sega"
	ManufacturerTaito     Manufacturer = "taito"
	ManufacturerFuryu     Manufacturer = "furyu"
	ManufacturerSanrio    Manufacturer = "sanrio"
	ManufacturerUnknown   Manufacturer = "unknown"
)

// Manufacturers lists the known manufacturers in display order.
func Manufacturers() []Manufacturer {
	return []Manufacturer{
		ManufacturerBandai,
		ManufacturerBanpresto,
		ManufacturerSega,
		ManufacturerTaito,
		ManufacturerFuryu,
		ManufacturerSanrio,
		ManufacturerUnknown,
	}
}

// Record is one prize entry. The json tags are the persisted slot layout
// and must not change.
type Record struct {
	Identifier      string       `json:"identifier"`
	Name            string       `json:"name"`
	Category        Category     `json:"category"`
	Manufacturer    Manufacturer `json:"manufacturer"`
	Quantity        int          `json:"quantity"`
	AcquisitionDate Date         `json:"acquisitionDate"`
	Photo           string       `json:"photo,omitempty"`
	Notes           string       `json:"notes,omitempty"`
}

// NewIdentifier returns a fresh opaque record identifier.
func NewIdentifier() string {
	return uuid.NewString()
}
