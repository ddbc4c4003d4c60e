package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var knownIcons = []any{IconClock, IconTrendingUp, IconAlertTriangle, IconPackage}

// Validate checks a KPI card.
func (m Metric) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&m.Value, validation.Required),
		validation.Field(&m.Icon, validation.Required, validation.In(knownIcons...)),
	)
}

// Validate checks a delivery rate bar.
func (p DeliveryRatePoint) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Days, validation.Required),
		validation.Field(&p.Rate, validation.Min(0.0), validation.Max(100.0)),
	)
}

// Validate checks a delivery status wedge.
func (s DeliveryStatusSlice) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Value, validation.Min(0.0)),
		validation.Field(&s.Color, validation.Required, validation.Match(hexColorPattern).Error("must be a hex color such as #22c55e")),
	)
}

// Validate checks every section. The on-time score is not validated; it is
// clamped when rendered.
func (d Data) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Length(0, 200)),
		validation.Field(&d.Metrics),
		validation.Field(&d.DeliveryRates),
		validation.Field(&d.DeliveryStatus),
	)
}

// ValidateData runs the semantic rules and reports failures as a validation error.
func ValidateData(data Data) error {
	if err := data.Validate(); err != nil {
		return errInvalidDocument(goerrors.FromOzzoValidation(err, "dashboard: invalid data"), "dashboard: invalid data")
	}
	return nil
}

const documentSchemaName = "delivery-dashboard.schema.json"

// DocumentSchema is the JSON schema data documents must satisfy.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Delivery dashboard data document",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string", "enum": ["1"]},
    "title": {"type": "string"},
    "metrics": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["title", "value", "icon"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "value": {"type": "string"},
          "icon": {"type": "string", "enum": ["clock", "trending-up", "alert-triangle", "package"]},
          "description": {"type": "string"}
        }
      }
    },
    "delivery_rates": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["days", "rate"],
        "properties": {
          "days": {"type": "string", "minLength": 1},
          "rate": {"type": "number"}
        }
      }
    },
    "delivery_status": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "value", "color"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "value": {"type": "number"},
          "color": {"type": "string"}
        }
      }
    },
    "on_time_score": {"type": "integer"}
  }
}`

// DocumentValidator checks data documents against DocumentSchema.
type DocumentValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewDocumentValidator builds a validator backed by jsonschema v5.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{}
}

var defaultDocumentValidator = NewDocumentValidator()

// Validate ensures the document satisfies the schema.
func (v *DocumentValidator) Validate(doc *Document) error {
	if doc == nil {
		return errInvalidDocument(errors.New("document is nil"), "dashboard: invalid data document")
	}
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dashboard: marshal data document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize data document: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return schemaError(err)
	}
	return nil
}

func (v *DocumentValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(documentSchemaName, bytes.NewReader([]byte(DocumentSchema))); err != nil {
			v.err = fmt.Errorf("dashboard: load document schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(documentSchemaName)
		if v.err != nil {
			v.err = fmt.Errorf("dashboard: compile document schema: %w", v.err)
		}
	})
	return v.schema, v.err
}

func schemaError(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return errInvalidDocument(err, "dashboard: data document failed schema validation")
	}
	var fields goerrors.ValidationErrors
	collectSchemaLeaves(verr, &fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return errInvalidDocument(
		goerrors.NewValidation("dashboard: data document failed schema validation", fields...),
		"dashboard: data document failed schema validation",
	)
}

func collectSchemaLeaves(verr *jsonschema.ValidationError, out *goerrors.ValidationErrors) {
	if len(verr.Causes) == 0 {
		field := strings.TrimPrefix(verr.InstanceLocation, "/")
		if field == "" {
			field = "document"
		}
		*out = append(*out, goerrors.FieldError{
			Field:   strings.ReplaceAll(field, "/", "."),
			Message: verr.Message,
		})
		return
	}
	for _, cause := range verr.Causes {
		collectSchemaLeaves(cause, out)
	}
}
