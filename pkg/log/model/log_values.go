package model

import (
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
)

// LogValues is the fixed-shape view of a single log record. Nil fields were absent on the record.
type LogValues struct {
	TraceId                 *string
	SpanId                  *string
	SeverityText            *string
	SeverityNumber          *int
	Body                    *string
	AttributesJson          *string
	EventName               *string
	CorrelationId           *string
	TenantId                *string
	RowsCount               *int64
	HttpRequestMethod       *string
	HttpRequestUrl          *string
	HttpRequestRoute        *string
	HttpRequestDomain       *string
	HttpRequestScheme       *string
	HttpRequestPort         *int
	HttpRequestHeadersJson  *string
	HttpRequestBody         *string
	HttpResponseCode        *int
	HttpResponseTimeMs      *float64
	HttpResponseMessage     *string
	HttpResponseHeadersJson *string
}

// NewLogValues normalizes a record. Severity is taken as-is from the record's own severity
// text and number; nothing is derived from other level enumerations.
func NewLogValues(record LogRecord) (LogValues, error) {
	lookup := attribute_lookup.NewAttributeLookup(record.Attributes, record.StateValues)
	attributesJson, err := lookup.Serialize()
	if err != nil {
		return LogValues{}, fmt.Errorf("failed to serialize log attributes: %w", err)
	}

	var traceId, spanId *string
	if record.TraceId.IsValid() {
		traceId = stringPtr(record.TraceId.String())
	}
	if record.SpanId.IsValid() {
		spanId = stringPtr(record.SpanId.String())
	}

	var severityNumber *int
	if record.SeverityNumber != 0 {
		severityNumber = &record.SeverityNumber
	}

	return LogValues{
		TraceId:                 traceId,
		SpanId:                  spanId,
		SeverityText:            nonEmpty(record.SeverityText),
		SeverityNumber:          severityNumber,
		Body:                    getBody(record),
		AttributesJson:          attributesJson,
		EventName:               nonEmpty(record.EventName),
		CorrelationId:           lookup.GetString(CorrelationIdKeys...),
		TenantId:                lookup.GetString(TenantIdKeys...),
		RowsCount:               lookup.GetLong(RowsCountKeys...),
		HttpRequestMethod:       lookup.GetString(HttpRequestMethodKeys...),
		HttpRequestUrl:          lookup.GetString(HttpRequestUrlKeys...),
		HttpRequestRoute:        lookup.GetString(HttpRequestRouteKeys...),
		HttpRequestDomain:       lookup.GetString(HttpRequestDomainKeys...),
		HttpRequestScheme:       lookup.GetString(HttpRequestSchemeKeys...),
		HttpRequestPort:         lookup.GetInt(HttpRequestPortKeys...),
		HttpRequestHeadersJson:  lookup.GetString(HttpRequestHeadersKeys...),
		HttpRequestBody:         lookup.GetString(HttpRequestBodyKeys...),
		HttpResponseCode:        lookup.GetInt(HttpResponseCodeKeys...),
		HttpResponseTimeMs:      lookup.GetDouble(HttpResponseTimeMsKeys...),
		HttpResponseMessage:     lookup.GetString(HttpResponseMessageKeys...),
		HttpResponseHeadersJson: lookup.GetString(HttpResponseHeadersKeys...),
	}, nil
}

func (lv LogValues) ToRequest() LogRequest {
	return LogRequest{
		TraceId:                 lv.TraceId,
		SpanId:                  lv.SpanId,
		SeverityText:            lv.SeverityText,
		SeverityNumber:          lv.SeverityNumber,
		Body:                    lv.Body,
		AttributesJson:          lv.AttributesJson,
		EventName:               lv.EventName,
		CorrelationId:           lv.CorrelationId,
		TenantId:                lv.TenantId,
		RowsCount:               lv.RowsCount,
		HttpRequestMethod:       lv.HttpRequestMethod,
		HttpRequestUrl:          lv.HttpRequestUrl,
		HttpRequestRoute:        lv.HttpRequestRoute,
		HttpRequestDomain:       lv.HttpRequestDomain,
		HttpRequestScheme:       lv.HttpRequestScheme,
		HttpRequestPort:         lv.HttpRequestPort,
		HttpRequestHeadersJson:  lv.HttpRequestHeadersJson,
		HttpRequestBody:         lv.HttpRequestBody,
		HttpResponseCode:        lv.HttpResponseCode,
		HttpResponseTimeMs:      lv.HttpResponseTimeMs,
		HttpResponseMessage:     lv.HttpResponseMessage,
		HttpResponseHeadersJson: lv.HttpResponseHeadersJson,
	}
}

func getBody(record LogRecord) *string {
	if record.FormattedMessage != nil {
		return record.FormattedMessage
	}
	if record.Body == nil {
		return nil
	}
	if s, ok := record.Body.(string); ok {
		return &s
	}
	if stringer, ok := record.Body.(fmt.Stringer); ok {
		return stringPtr(stringer.String())
	}
	return stringPtr(fmt.Sprint(record.Body))
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringPtr(s string) *string {
	return &s
}
