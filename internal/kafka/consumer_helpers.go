package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/session"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// outcome — итог обработки одного сообщения.
type outcome int

const (
	outcomeApplied outcome = iota // событие применено к корзине
	outcomeSkipped                // событие непригодно, коммитим без применения
	outcomeGaveUp                 // временные ошибки исчерпали попытки
	outcomeStopped                // контекст отменён
)

// Причины пропуска события (метка reason у kafka_cart_events_skipped_total).
const (
	skipMalformed      = "malformed"
	skipInvalidEvent   = "invalid_event"
	skipKeyMismatch    = "key_mismatch"
	skipInvalidSession = "invalid_session"
	skipUnknownProduct = "unknown_product"
)

var errKeyMismatch = errors.New("message key does not match session_id")

// decodeEvent — разбирает сообщение один раз и сверяет его с ключом.
// Ключ сообщения — session_id: событие без session_id получает его из ключа,
// событие с чужим session_id не применяется (оно попало не в ту партицию).
func decodeEvent(ctx context.Context, msg *kafka.Message) (*domain.CartEvent, string, error) {
	ev, err := validate.DecodeEvent(msg.Value)
	if err != nil {
		return nil, skipMalformed, err
	}

	key := strings.TrimSpace(string(msg.Key))
	ev.SessionID = strings.TrimSpace(ev.SessionID)
	switch {
	case ev.SessionID == "":
		ev.SessionID = key
	case key != "" && key != ev.SessionID:
		return nil, skipKeyMismatch, fmt.Errorf("%w: key=%q session_id=%q", errKeyMismatch, key, ev.SessionID)
	}

	if ev.SessionID != "" {
		if _, err := session.NormalizeID(ev.SessionID); err != nil {
			return nil, skipInvalidSession, err
		}
	}
	if err := validate.ValidateEvent(ctx, ev); err != nil {
		return nil, skipInvalidEvent, err
	}
	return ev, "", nil
}

// classify — причина пропуска для ошибки применения; пустая строка — ошибка временная.
// Неизвестный товар проверяется раньше общей ErrInvalidEvent: Apply оборачивает его в неё.
func classify(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnknownProduct):
		return skipUnknownProduct
	case errors.Is(err, session.ErrInvalidSessionID):
		return skipInvalidSession
	case errors.Is(err, validate.ErrInvalidEvent):
		return skipInvalidEvent
	default:
		return ""
	}
}

// process — разбирает сообщение и применяет событие, повторяя временные ошибки на месте.
func (c *Consumer) process(ctx context.Context, topic string, msg *kafka.Message) outcome {
	ev, reason, err := decodeEvent(ctx, msg)
	if err != nil {
		c.skip(ctx, topic, msg, reason, err)
		return outcomeSkipped
	}

	delay := c.backoff.initial
	for attempt := 1; ; attempt++ {
		ctxTimeout, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.carts.Apply(ctxTimeout, ev)
		cancel()

		if err == nil {
			metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
			c.log.Infof(ctx, "cart event applied offset=%d session=%s type=%s", msg.Offset, ev.SessionID, ev.Type)
			return outcomeApplied
		}
		if reason := classify(err); reason != "" {
			c.skip(ctx, topic, msg, reason, err)
			return outcomeSkipped
		}

		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		if ctx.Err() != nil {
			return outcomeStopped
		}
		if attempt >= c.maxAttempts {
			return outcomeGaveUp
		}
		sleep := c.backoff.jitter(delay)
		c.log.Warnf(ctx, "apply failed offset=%d session=%s type=%s attempt=%d: %v (retry in %s)",
			msg.Offset, ev.SessionID, ev.Type, attempt, err, sleep)
		if !sleepCtx(ctx, sleep) {
			return outcomeStopped
		}
		delay = c.backoff.next(delay)
	}
}

// skip — событие коммитится без применения; причина попадает в лог и метрику.
func (c *Consumer) skip(ctx context.Context, topic string, msg *kafka.Message, reason string, err error) {
	metrics.KafkaEventsSkipped.WithLabelValues(topic, reason).Inc()
	switch reason {
	case skipUnknownProduct:
		// Каталог хоста разошёлся с витриной: корзина цела, событие просто не к чему применить.
		c.log.Warnf(ctx, "cart event for unknown product offset=%d session=%s: %v (skipped)", msg.Offset, msg.Key, err)
	case skipKeyMismatch, skipInvalidSession:
		c.log.Errorf(ctx, "cart event routed to wrong session offset=%d key=%q: %v (skipped)", msg.Offset, msg.Key, err)
	default:
		c.log.Warnf(ctx, "invalid cart event offset=%d key=%q reason=%s: %v (skipped)", msg.Offset, msg.Key, reason, err)
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// backoff — экспоненциальная пауза с equal-jitter между initial и max.
type backoff struct {
	initial time.Duration
	max     time.Duration
	rnd     *rand.Rand
}

// next — удвоенная пауза, не больше max.
func (b backoff) next(d time.Duration) time.Duration {
	d *= 2
	if d > b.max {
		return b.max
	}
	return d
}

// jitter — половина задержки фиксирована, вторая половина случайна.
func (b backoff) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(b.rnd.Int63n(int64(d-half)+1))
}

// sleepCtx ждёт d или отмену контекста; false — контекст отменён.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
