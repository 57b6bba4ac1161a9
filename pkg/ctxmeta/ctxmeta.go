// Пакет ctxmeta — нейтральный слой для работы с метаданными запроса,
// которые прокидываются через context.Context (request_id, сессия корзины, trace/span, ответ на confirm).
// Идея: HTTP-слой, консьюмер и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyRequestID       ctxKey = "request_id"
	KeySession         ctxKey = "session"
	KeyCheckoutConfirm ctxKey = "checkout_confirm"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSession — id сессии витрины, к корзине которой относится вызов.
func WithSession(ctx context.Context, sessionID string) context.Context {
	if ctx == nil || sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeySession, sessionID)
}

// SessionFromContext достаёт id сессии из контекста.
func SessionFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeySession).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCheckoutConfirm — заранее известный ответ пользователя на подтверждение покупки
// (неинтерактивные хосты: HTTP, Kafka).
func WithCheckoutConfirm(ctx context.Context, confirmed bool) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, KeyCheckoutConfirm, confirmed)
}

// CheckoutConfirmFromContext — ответ на подтверждение; ok=false, если ответа нет.
func CheckoutConfirmFromContext(ctx context.Context) (confirmed, ok bool) {
	if ctx == nil {
		return false, false
	}
	confirmed, ok = ctx.Value(KeyCheckoutConfirm).(bool)
	return confirmed, ok
}
