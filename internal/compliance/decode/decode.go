// Package decode turns raw vendor JSON into a tagged models.Payload.
//
// Decoding is lenient: a field with an unexpected JSON type is dropped and
// reported as a diagnostic, and the rest of the payload still decodes. Only
// input that is not a JSON object at all is rejected.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
	"kycaml/pkg/platform/sentinel"
)

const (
	envelopeKey = "kycAMLChecks"
	providerKey = "northCapital"
)

var (
	qualifierType    = reflect.TypeOf(models.Qualifier{})
	penaltyEntryType = reflect.TypeOf(models.PenaltyEntry{})
)

// Payload decodes a bare compliance payload.
func Payload(data []byte, sink ports.DiagnosticSink) (models.Payload, error) {
	raw, err := unmarshalObject(data)
	if err != nil {
		return models.Payload{}, err
	}
	return FromMap(raw, sink), nil
}

// Record decodes a payment record wrapping the payload as
// kycAMLChecks.northCapital. Missing wrapper keys degrade to an empty
// LegacyFlat payload.
func Record(data []byte, sink ports.DiagnosticSink) (models.Payload, error) {
	raw, err := unmarshalObject(data)
	if err != nil {
		return models.Payload{}, err
	}
	return FromRecord(raw, sink), nil
}

// FromRecord unwraps an already-decoded payment record.
func FromRecord(raw map[string]any, sink ports.DiagnosticSink) models.Payload {
	sink = orNop(sink)

	checks, ok := raw[envelopeKey].(map[string]any)
	if !ok {
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticMissingField,
			Shape:  models.ShapeLegacyFlat,
			Field:  envelopeKey,
			Detail: "record has no compliance checks",
		})
		return emptyPayload()
	}
	payload, ok := checks[providerKey].(map[string]any)
	if !ok {
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticMissingField,
			Shape:  models.ShapeLegacyFlat,
			Field:  envelopeKey + "." + providerKey,
			Detail: "record has no provider payload",
		})
		return emptyPayload()
	}
	return FromMap(payload, sink)
}

// FromMap classifies raw and decodes it into the matching shape.
func FromMap(raw map[string]any, sink ports.DiagnosticSink) models.Payload {
	sink = orNop(sink)
	shape := Detect(raw)
	d := &decoder{sink: sink, shape: shape}

	switch shape {
	case models.ShapeSplitAMLKYC:
		var r models.SplitResponse
		d.decode(raw, &r)
		return models.NewSplit(&r)
	case models.ShapeSimplified:
		var c models.SimplifiedCheck
		d.decode(raw, &c)
		return models.NewSimplified(&c)
	case models.ShapeLegacyNested:
		var r models.LegacyResponse
		d.decode(raw, &r)
		return models.Payload{Shape: models.ShapeLegacyNested, Legacy: &r}
	}

	if !hasFlatKeys(raw) {
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticUnrecognizedShape,
			Shape:  models.ShapeLegacyFlat,
			Detail: "payload matches no known shape, treating as legacy flat",
		})
	}
	var r models.LegacyResponse
	d.decode(raw, &r)
	return models.Payload{Shape: models.ShapeLegacyFlat, Legacy: &r}
}

type decoder struct {
	sink  ports.DiagnosticSink
	shape models.Shape
}

func (d *decoder) decode(input map[string]any, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		MatchName:        exactName,
		DecodeHook:       mapstructure.DecodeHookFuncType(d.liftSingle),
		Result:           out,
	})
	if err != nil {
		d.record(models.DiagnosticMalformedPayload, "", err.Error())
		return
	}

	if err := dec.Decode(input); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			for _, msg := range merr.Errors {
				d.record(models.DiagnosticMalformedField, "", msg)
			}
			return
		}
		d.record(models.DiagnosticMalformedField, "", err.Error())
	}
}

// exactName matches vendor keys case-sensitively; kycStatus and kycstatus
// belong to different shapes.
func exactName(mapKey, fieldName string) bool {
	return mapKey == fieldName
}

// liftSingle turns a lone object into a one-element sequence wherever the
// model expects a slice.
func (d *decoder) liftSingle(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || from.Kind() != reflect.Map {
		return data, nil
	}

	field := to.Elem().Name()
	switch to.Elem() {
	case qualifierType:
		field = "qualifiers.qualifier"
	case penaltyEntryType:
		field = "restriction.pa"
	}
	d.record(models.DiagnosticQualifierCardinality, field, "single object normalized to a sequence")
	return []any{data}, nil
}

func (d *decoder) record(kind models.DiagnosticKind, field, detail string) {
	d.sink.Record(models.Diagnostic{
		Kind:   kind,
		Shape:  d.shape,
		Field:  field,
		Detail: detail,
	})
}

func unmarshalObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", sentinel.ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after payload", sentinel.ErrMalformed)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: payload is %T, want object", sentinel.ErrMalformed, v)
	}
	return obj, nil
}

func emptyPayload() models.Payload {
	return models.Payload{Shape: models.ShapeLegacyFlat, Legacy: &models.LegacyResponse{}}
}

func orNop(sink ports.DiagnosticSink) ports.DiagnosticSink {
	if sink == nil {
		return ports.NopSink{}
	}
	return sink
}
