package ports

import "context"

// MessageConsumer — внешний источник событий корзины (брокер сообщений).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
