package prize

import (
	"bytes"
	"encoding/json"
	"strings"
)

// looseRecord is the tolerant decode target for stored records. Quantity is
// a pointer so a missing field can be told apart from an explicit zero, and
// the date is kept as a string so one malformed date does not drop the
// whole record.
type looseRecord struct {
	Identifier      string       `json:"identifier"`
	Name            string       `json:"name"`
	Category        Category     `json:"category"`
	Manufacturer    Manufacturer `json:"manufacturer"`
	Quantity        *int         `json:"quantity"`
	AcquisitionDate string       `json:"acquisitionDate"`
	Photo           string       `json:"photo"`
	Notes           string       `json:"notes"`
}

// Migrate normalizes a raw store payload into records, upgrading entries
// written before the category and quantity fields existed. Input that is
// not a JSON list yields an empty slice; null or undecodable elements are
// dropped; every decodable element is kept.
func Migrate(data []byte) []Record {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Record{}
	}

	out := make([]Record, 0, len(raw))
	for _, el := range raw {
		trimmed := bytes.TrimSpace(el)
		if len(trimmed) == 0 || string(trimmed) == "null" {
			continue
		}

		var lr looseRecord
		if err := json.Unmarshal(el, &lr); err != nil {
			continue
		}

		rec := Record{
			Identifier:   lr.Identifier,
			Name:         lr.Name,
			Category:     lr.Category,
			Manufacturer: lr.Manufacturer,
			Photo:        lr.Photo,
			Notes:        lr.Notes,
		}

		if rec.Identifier == "" {
			rec.Identifier = NewIdentifier()
		}
		if rec.Category == "" || !rec.Category.Valid() {
			rec.Category = CategoryOther
		}
		if rec.Manufacturer == "" {
			rec.Manufacturer = ManufacturerUnknown
		}

		// Missing quantity means the record predates the field: default
		// to 1. An explicit zero is a real value and stays zero.
		switch {
		case lr.Quantity == nil:
			rec.Quantity = 1
		case *lr.Quantity < 0:
			rec.Quantity = 0
		default:
			rec.Quantity = *lr.Quantity
		}

		if s := lr.AcquisitionDate; s != "" {
			if idx := strings.IndexByte(s, 'T'); idx > 0 {
				s = s[:idx]
			}
			if d, err := ParseDate(s); err == nil {
				rec.AcquisitionDate = d
			}
		}

		out = append(out, rec)
	}
	return out
}
