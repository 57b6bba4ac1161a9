// Package storage — общие части реализаций ports.SlotStorage.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// ErrEmptyKey — ключ слота не задан.
var ErrEmptyKey = errors.New("storage: empty slot key")

// CheckKey — общий для всех реализаций контроль ключа.
func CheckKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

var _ ports.SlotStorage = (*Namespaced)(nil)

// Namespaced — представление хранилища с префиксом ключей "<ns>:".
// Позволяет держать корзины разных сессий в одном бэкенде под одним фиксированным ключом.
type Namespaced struct {
	base   ports.SlotStorage
	prefix string
}

// NewNamespaced — пустой ns возвращает обёртку без префикса.
func NewNamespaced(base ports.SlotStorage, ns string) *Namespaced {
	prefix := ""
	if ns != "" {
		prefix = ns + ":"
	}
	return &Namespaced{base: base, prefix: prefix}
}

func (n *Namespaced) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := CheckKey(key); err != nil {
		return "", false, err
	}
	return n.base.GetItem(ctx, n.prefix+key)
}

func (n *Namespaced) SetItem(ctx context.Context, key, value string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	return n.base.SetItem(ctx, n.prefix+key, value)
}

func (n *Namespaced) RemoveItem(ctx context.Context, key string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	return n.base.RemoveItem(ctx, n.prefix+key)
}
