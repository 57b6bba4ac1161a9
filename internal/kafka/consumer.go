package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// cartDispatcher — реестр сессий: применяет уже разобранное событие к корзине его сессии.
type cartDispatcher interface {
	Apply(ctx context.Context, ev *domain.CartEvent) error
}

// Consumer — читает события корзины из топика, где ключ сообщения — session_id.
// События одной сессии лежат в одной партиции и применяются строго по порядку:
// временная ошибка повторяется на месте, а не откладывается за следующими событиями.
type Consumer struct {
	reader      reader
	carts       cartDispatcher
	log         ports.Logger
	timeout     time.Duration
	maxAttempts int
	backoff     backoff
	closeOnce   sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, carts cartDispatcher, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg.withDefaults(), carts, log)
}

func newConsumer(r reader, cfg ConsumerConfig, carts cartDispatcher, log ports.Logger) *Consumer {
	return &Consumer{
		reader:      r,
		carts:       carts,
		log:         log,
		timeout:     cfg.ProcessTimeout,
		maxAttempts: cfg.MaxAttempts,
		backoff: backoff{
			initial: cfg.RetryInitial,
			max:     cfg.RetryMax,
			rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		},
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) событие применено или пропущено как непригодное → CommitMessages;
// 3) временная ошибка → повтор того же события с backoff, пока не кончатся попытки;
// 4) попытки исчерпаны → оффсет не коммитится, событие вернётся после перезапуска (at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "cart event consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	delay := c.backoff.initial
	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Временная ошибка брокера/сети: ждём и повторяем.
			sleep := c.backoff.jitter(delay)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !sleepCtx(ctx, sleep) {
				return ctx.Err()
			}
			delay = c.backoff.next(delay)
			continue
		}
		delay = c.backoff.initial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		switch c.process(ctx, rc.Topic, &msg) {
		case outcomeApplied, outcomeSkipped:
			c.commitSafely(ctx, &msg)
		case outcomeGaveUp:
			c.log.Errorf(ctx, "cart event left uncommitted offset=%d session=%s after %d attempts", msg.Offset, msg.Key, c.maxAttempts)
		case outcomeStopped:
			return ctx.Err()
		}
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
