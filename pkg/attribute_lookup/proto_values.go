package attribute_lookup

import (
	"go.opentelemetry.io/otel/trace"
	common "go.opentelemetry.io/proto/otlp/common/v1"
)

// FromProtoKeyValues turns OTLP attributes into an attribute bag, keeping their order.
func FromProtoKeyValues(attributes []*common.KeyValue) []KeyValue {
	kvs := make([]KeyValue, 0, len(attributes))
	for _, attr := range attributes {
		if attr == nil {
			continue
		}
		kvs = append(kvs, KeyValue{Key: attr.Key, Value: FromProtoAnyValue(attr.Value)})
	}
	return kvs
}

// FromProtoAnyValue unwraps an OTLP AnyValue into plain Go values. Arrays become []any and
// key-value lists become map[string]any.
func FromProtoAnyValue(value *common.AnyValue) any {
	if value == nil {
		return nil
	}
	switch v := value.Value.(type) {
	case *common.AnyValue_StringValue:
		return v.StringValue
	case *common.AnyValue_BoolValue:
		return v.BoolValue
	case *common.AnyValue_IntValue:
		return v.IntValue
	case *common.AnyValue_DoubleValue:
		return v.DoubleValue
	case *common.AnyValue_BytesValue:
		return v.BytesValue
	case *common.AnyValue_ArrayValue:
		values := v.ArrayValue.GetValues()
		items := make([]any, len(values))
		for i, item := range values {
			items[i] = FromProtoAnyValue(item)
		}
		return items
	case *common.AnyValue_KvlistValue:
		values := v.KvlistValue.GetValues()
		items := make(map[string]any, len(values))
		for _, item := range values {
			items[item.GetKey()] = FromProtoAnyValue(item.GetValue())
		}
		return items
	default:
		return nil
	}
}

// TraceIdFromProto reads an OTLP trace id. Ids of the wrong length come back as the zero id.
func TraceIdFromProto(raw []byte) trace.TraceID {
	var id trace.TraceID
	if len(raw) == len(id) {
		copy(id[:], raw)
	}
	return id
}

func SpanIdFromProto(raw []byte) trace.SpanID {
	var id trace.SpanID
	if len(raw) == len(id) {
		copy(id[:], raw)
	}
	return id
}
