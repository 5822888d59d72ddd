package palette

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/models"
)

// isoTimestamp matches JavaScript's Date.toISOString
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

const importSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["palette"],
  "properties": {
    "palette": {
      "type": "object",
      "required": ["name", "baseColors"],
      "properties": {
        "name": {"type": "string", "pattern": "\\S"},
        "createdAt": {"type": ["string", "null"]},
        "baseColors": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "hex"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "hex": {"type": "string", "pattern": "^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$"},
              "name": {"type": ["string", "null"]}
            }
          }
        },
        "variations": {
          "type": ["object", "null"],
          "additionalProperties": {
            "type": "object",
            "additionalProperties": {
              "type": ["array", "null"],
              "items": {"type": "string", "pattern": "^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$"}
            }
          }
        },
        "flatColors": {"type": ["array", "null"]}
      }
    }
  }
}`

var importSchema = mustCompileSchema(importSchemaJSON)

func mustCompileSchema(schemaJSON string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid palette import schema: %v", err))
	}
	return schema
}

// ExportToJSON renders the active palette as a full export document
func (s *Store) ExportToJSON() ([]byte, error) {
	s.mu.Lock()
	palette := s.active().Clone()
	createdAt := s.now().UTC().Format(isoTimestamp)
	s.mu.Unlock()

	doc := models.PaletteExport{
		Palette: models.ExportedPalette{
			Name:       palette.Name,
			CreatedAt:  createdAt,
			BaseColors: palette.BaseColors,
			Variations: palette.Variations,
			FlatColors: palette.FlatColors,
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.metrics.observeError("export")
		return nil, fmt.Errorf("error encoding palette export: %w", err)
	}
	s.metrics.observe("export", true)
	return data, nil
}

// ExportFlatColors renders the active palette's flat list as a bare JSON array
func (s *Store) ExportFlatColors() ([]byte, error) {
	flat := s.GetFlatColors()

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		s.metrics.observeError("export_flat")
		return nil, fmt.Errorf("error encoding flat colors: %w", err)
	}
	s.metrics.observe("export_flat", true)
	return data, nil
}

// ImportFromJSON adds the palette described by an export document as a new,
// active palette and returns the name it was stored under. The name is trimmed
// and a clashing name gets a " (n)" suffix. Stored variation sets are kept when
// every family has its generated size, the flat list is always recomputed. Any
// malformed input fails with an error wrapping ErrInvalidFormat and leaves the
// store untouched.
func (s *Store) ImportFromJSON(ctx context.Context, data []byte) (string, error) {
	palette, err := decodeImport(data)
	if err != nil {
		s.metrics.observeError("import")
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := palette.Name
	palette.Name = s.uniqueName(base, func(i int) string {
		return fmt.Sprintf("%s (%d)", base, i)
	})
	s.setActive(palette.Name)
	s.savePalette(ctx, palette)

	s.logger.Printf("Imported palette %q with %d colors", palette.Name, len(palette.BaseColors))
	s.metrics.observe("import", true)
	return palette.Name, nil
}

func decodeImport(data []byte) (models.Palette, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Palette{}, unparseableJSON(err)
	}

	result, err := importSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return models.Palette{}, unparseableJSON(err)
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return models.Palette{}, schemaViolation(details)
	}

	var doc models.PaletteExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Palette{}, unparseableJSON(err)
	}

	palette := models.NewPalette(strings.TrimSpace(doc.Palette.Name))
	for _, color := range doc.Palette.BaseColors {
		if palette.IndexOf(color.ID) >= 0 {
			return models.Palette{}, duplicateColorID(color.ID)
		}

		hex, err := colors.Canonical(color.Hex)
		if err != nil {
			return models.Palette{}, schemaViolation([]string{err.Error()})
		}
		color.Hex = hex
		palette.BaseColors = append(palette.BaseColors, color)

		if vs, ok := doc.Palette.Variations[color.ID]; ok && wellFormed(vs) {
			palette.Variations[color.ID] = vs
		} else {
			palette.Variations[color.ID] = NewVariationSet(hex)
		}
	}

	return palette, nil
}
