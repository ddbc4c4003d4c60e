package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	documentVersionV1 = "1"
	// DocumentVersion exposes the current data document format version for tooling.
	DocumentVersion = documentVersionV1
)

// Document is the YAML/JSON form of Data. Sections left out of the document
// fall back to the built-in defaults; sections present but empty stay empty.
type Document struct {
	Version        string                 `json:"version" yaml:"version"`
	Title          string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Metrics        *[]Metric              `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	DeliveryRates  *[]DeliveryRatePoint   `json:"delivery_rates,omitempty" yaml:"delivery_rates,omitempty"`
	DeliveryStatus *[]DeliveryStatusSlice `json:"delivery_status,omitempty" yaml:"delivery_status,omitempty"`
	OnTimeScore    *int                   `json:"on_time_score,omitempty" yaml:"on_time_score,omitempty"`
	Source         string                 `json:"-" yaml:"-"`
}

// NewDocument captures every section of data in a document.
func NewDocument(data Data) *Document {
	data = data.Clone()
	metrics := nonNil(data.Metrics)
	rates := nonNil(data.DeliveryRates)
	status := nonNil(data.DeliveryStatus)
	score := data.OnTimeScore
	return &Document{
		Version:        documentVersionV1,
		Title:          data.Title,
		Metrics:        &metrics,
		DeliveryRates:  &rates,
		DeliveryStatus: &status,
		OnTimeScore:    &score,
	}
}

// DefaultDocument returns the built-in sample data as a document.
func DefaultDocument() *Document {
	return NewDocument(DefaultData())
}

// Data resolves the document into Data, filling missing sections from DefaultData.
func (doc *Document) Data() Data {
	data := DefaultData()
	if doc == nil {
		return data
	}
	if doc.Title != "" {
		data.Title = doc.Title
	}
	if doc.Metrics != nil {
		data.Metrics = nonNil(*doc.Metrics)
	}
	if doc.DeliveryRates != nil {
		data.DeliveryRates = nonNil(*doc.DeliveryRates)
	}
	if doc.DeliveryStatus != nil {
		data.DeliveryStatus = nonNil(*doc.DeliveryStatus)
	}
	if doc.OnTimeScore != nil {
		data.OnTimeScore = *doc.OnTimeScore
	}
	return data.Clone()
}

// Validate checks the document version, the schema and the semantic rules.
func (doc *Document) Validate() error {
	if doc == nil {
		return errInvalidDocument(errors.New("document is nil"), "dashboard: invalid data document")
	}
	if doc.Version != documentVersionV1 {
		return errInvalidDocument(
			fmt.Errorf("unsupported version %q", doc.Version),
			fmt.Sprintf("dashboard: unsupported data document version %q", doc.Version),
		)
	}
	if err := defaultDocumentValidator.Validate(doc); err != nil {
		return err
	}
	return ValidateData(doc.Data())
}

func (doc *Document) applyDefaults() {
	if doc.Version == "" {
		doc.Version = documentVersionV1
	}
}

// LoadData reads, validates and resolves a data document from disk.
func LoadData(path string) (Data, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return Data{}, err
	}
	return doc.Data(), nil
}

// ReadDocument loads a data document from disk.
func ReadDocument(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open data document %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// DecodeDocument reads a data document from any reader. JSON is accepted as a YAML subset.
func DecodeDocument(r io.Reader) (*Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errInvalidDocument(err, "dashboard: data document is empty")
		}
		return nil, errInvalidDocument(err, "dashboard: parse data document")
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteDocument encodes the document as YAML.
func WriteDocument(w io.Writer, doc *Document) error {
	if doc == nil {
		return errors.New("dashboard: data document is nil")
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode data document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("dashboard: encode data document: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return append([]T{}, items...)
}
