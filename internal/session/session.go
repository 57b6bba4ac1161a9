// Package session — корзины браузерных сессий: по одному CartManager на сессию.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/internal/view/headless"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultID — сессия, если клиент её не указал.
const DefaultID = "default"

const maxIDLen = 128

// ErrInvalidSessionID — недопустимый идентификатор сессии.
var ErrInvalidSessionID = errors.New("invalid session id")

// Session — состояние одной страницы витрины.
type Session struct {
	ID   string
	Cart *usecase.CartManager
	View *headless.View

	// mu — один запрос за раз: событие и выборка его уведомлений из View не перемежаются с чужими.
	mu sync.Mutex
}

// Cache — кэш живых сессий.
// Требования к реализации: потокобезопасность; возврат того же указателя (не копии).
type Cache interface {
	Get(ctx context.Context, id string) (*Session, bool)
	Set(ctx context.Context, s *Session) error
}

// lease — сессия, с которой сейчас работают запросы; refs — их число.
type lease struct {
	s    *Session
	refs int
}

// Registry — get-or-create сессий: сначала занятые сессии, затем кэш,
// при промахе — новая корзина из хранилища.
// Пока сессия занята запросом, второй CartManager для её id не создаётся,
// даже если кэш успел её вытеснить.
type Registry struct {
	mu   sync.Mutex
	busy map[string]*lease

	cache   Cache
	storage ports.SlotStorage
	catalog ports.ProductCatalog
	log     ports.Logger
	key     string
}

// NewRegistry — DI-конструктор. key — фиксированный ключ слота корзины внутри сессии.
func NewRegistry(cache Cache, slots ports.SlotStorage, catalog ports.ProductCatalog, log ports.Logger, key string) *Registry {
	if key == "" {
		key = usecase.DefaultStorageKey
	}
	return &Registry{busy: make(map[string]*lease), cache: cache, storage: slots, catalog: catalog, log: log, key: key}
}

// NormalizeID — пустой id превращается в DefaultID; допустимы буквы, цифры, '-', '_', '.'.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultID, nil
	}
	if len(id) > maxIDLen {
		return "", fmt.Errorf("%w: too long", ErrInvalidSessionID)
	}
	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.' {
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidSessionID, r)
		}
	}
	return id, nil
}

// Session — сессия по id; при первом обращении корзина загружается из хранилища и отрисовывается.
func (r *Registry) Session(ctx context.Context, id string) (*Session, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(ctx, id), nil
}

// acquire — сессия, закреплённая за вызывающим до release.
// Закреплённую сессию все запросы получают одну и ту же, минуя кэш.
func (r *Registry) acquire(ctx context.Context, id string) (*Session, func(), error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, nil, err
	}

	r.mu.Lock()
	l, ok := r.busy[id]
	if !ok {
		l = &lease{s: r.lookupLocked(ctx, id)}
		r.busy[id] = l
	}
	l.refs++
	r.mu.Unlock()

	release := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if l.refs--; l.refs == 0 {
			delete(r.busy, id)
		}
	}
	return l.s, release, nil
}

// lookupLocked — занятая сессия, затем кэш, затем новая корзина. Вызывается под r.mu.
func (r *Registry) lookupLocked(ctx context.Context, id string) *Session {
	if l, ok := r.busy[id]; ok {
		return l.s
	}
	if s, found := r.cache.Get(ctx, id); found {
		return s
	}

	view := headless.New()
	cart := usecase.NewCartManager(
		storage.NewNamespaced(r.storage, "session:"+id),
		view, view, r.log,
		usecase.WithStorageKey(r.key),
		usecase.WithCatalog(r.catalog),
	)
	cart.Init(ctx)

	s := &Session{ID: id, Cart: cart, View: view}
	if setErr := r.cache.Set(ctx, s); setErr != nil {
		r.log.Warnf(ctx, "session cache set failed id=%s err=%v", id, setErr)
	}
	r.log.Infof(ctx, "session opened id=%s items=%d", id, cart.Count())
	return s
}

// State — текущее состояние виджета сессии (GET корзины).
func (r *Registry) State(ctx context.Context, id string) (headless.Snapshot, error) {
	s, release, err := r.acquire(ctx, id)
	if err != nil {
		return headless.Snapshot{}, err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.View.Drain(), nil
}

// ProductCard — товар витрины с цветом, который получит позиция при нажатии «в корзину».
type ProductCard struct {
	domain.Product
	SelectedColor string `json:"selected_color"`
}

// Products — карточки каталога в контексте сессии (активные swatch'и).
func (r *Registry) Products(ctx context.Context, id string) ([]ProductCard, error) {
	s, release, err := r.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	if r.catalog == nil {
		return []ProductCard{}, nil
	}
	products := r.catalog.Products()
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{Product: p, SelectedColor: s.Cart.ResolveColor(p.ID)})
	}
	return cards, nil
}

// Dispatch — проверяет событие, применяет его к корзине сессии и возвращает
// состояние виджета вместе с накопленными уведомлениями.
func (r *Registry) Dispatch(ctx context.Context, ev *domain.CartEvent) (snap headless.Snapshot, err error) {
	if err := validate.ValidateEvent(ctx, ev); err != nil {
		return headless.Snapshot{}, err
	}

	ctx, span := telemetry.StartSpan(ctx, "cart."+string(ev.Type),
		attribute.String("cart.session", ev.SessionID))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s, release, err := r.acquire(ctx, ev.SessionID)
	if err != nil {
		return headless.Snapshot{}, fmt.Errorf("%w: %w", validate.ErrInvalidEvent, err)
	}
	defer release()
	ctx = ctxmeta.WithSession(ctx, s.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Cart.Apply(ctx, ev); err != nil {
		return s.View.Drain(), err
	}
	return s.View.Drain(), nil
}

// Apply — событие из брокера: у такой сессии нет клиента, который забрал бы уведомления,
// поэтому они отбрасываются вместе со снимком.
func (r *Registry) Apply(ctx context.Context, ev *domain.CartEvent) error {
	_, err := r.Dispatch(ctx, ev)
	return err
}
