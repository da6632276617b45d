package protocol

import (
	"maps"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/andareed/epochx/epoch"
)

const colorPattern = `^#[0-9A-Fa-f]{6}$`

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

// noExtra rejects properties not listed in Properties. Resolve requires the
// schema to be a tree, so every use gets its own value.
func noExtra() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }

func referenceProperties() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"referenceTimestamp": {
			Type:        "integer",
			Description: "Unix seconds inside the reference epoch",
			Minimum:     floatPtr(float64(epoch.MinTimestamp)),
			Maximum:     floatPtr(float64(epoch.MaxTimestamp)),
		},
		"referenceEpoch": {
			Type:        "integer",
			Description: "Epoch number of the reference timestamp",
			Minimum:     floatPtr(-epoch.MaxEpoch),
			Maximum:     floatPtr(epoch.MaxEpoch),
		},
	}
}

// Schema returns the JSON Schema every configuration document is validated
// against, whatever its source format.
func Schema() *jsonschema.Schema {
	record := &jsonschema.Schema{
		Type:                 "object",
		Required:             []string{"id", "name", "color", "logo", "referenceTimestamp", "referenceEpoch"},
		AdditionalProperties: noExtra(),
		Properties: map[string]*jsonschema.Schema{
			"id":    {Type: "string", MinLength: intPtr(1)},
			"name":  {Type: "string", MinLength: intPtr(1)},
			"color": {Type: "string", Pattern: colorPattern},
			"logo":  {Type: "string"},
		},
	}
	maps.Copy(record.Properties, referenceProperties())

	return &jsonschema.Schema{
		Title:                "epochx protocol configuration",
		Type:                 "object",
		Required:             []string{"protocols"},
		AdditionalProperties: noExtra(),
		Properties: map[string]*jsonschema.Schema{
			"anchor": {
				Type:                 "object",
				Required:             []string{"referenceTimestamp", "referenceEpoch"},
				AdditionalProperties: noExtra(),
				Properties:           referenceProperties(),
			},
			"protocols": {
				Type:     "array",
				MinItems: intPtr(1),
				Items:    record,
			},
		},
	}
}

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	return Schema().Resolve(nil)
})
