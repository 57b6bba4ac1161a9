package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// SpanRef — идентификаторы активного спана строками для логов.
type SpanRef struct {
	TraceID string
	SpanID  string
}

// SpanFromContext — спан, открытый otelgin или реестром сессий (cart.<type>).
// ok=false, если спана нет: трейсинг выключен или вызов пришёл не из запроса.
func SpanFromContext(ctx context.Context) (SpanRef, bool) {
	if ctx == nil {
		return SpanRef{}, false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return SpanRef{}, false
	}
	return SpanRef{TraceID: sc.TraceID().String(), SpanID: sc.SpanID().String()}, true
}

// LogFields — метаданные контекста парами ключ/значение для структурного логгера.
// Отсутствующие значения пропускаются.
func LogFields(ctx context.Context) []any {
	var fields []any
	if rid, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if sid, ok := SessionFromContext(ctx); ok {
		fields = append(fields, "session", sid)
	}
	if ref, ok := SpanFromContext(ctx); ok {
		fields = append(fields, "trace_id", ref.TraceID, "span_id", ref.SpanID)
	}
	return fields
}
