package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// DefaultStorageKey — фиксированный ключ слота, в котором хранится корзина.
const DefaultStorageKey = "shoppingCart"

// Тексты, которые видит пользователь.
const (
	EmptyCartMessage       = "Your cart is empty"
	EmptyCheckoutWarning   = "Your cart is empty. Add some products before checking out."
	CheckoutSuccessMessage = "Purchase completed successfully! Thank you for your purchase."
)

// ErrNoCatalog — AddProduct вызван у менеджера без каталога.
var ErrNoCatalog = errors.New("product catalog is not configured")

// CheckoutResult — исход оформления заказа.
type CheckoutResult int

const (
	CheckoutEmpty     CheckoutResult = iota // корзина пуста, показано предупреждение
	CheckoutCancelled                       // пользователь не подтвердил
	CheckoutCompleted                       // подтверждено, корзина очищена
)

func (r CheckoutResult) String() string {
	switch r {
	case CheckoutEmpty:
		return "empty"
	case CheckoutCancelled:
		return "cancelled"
	case CheckoutCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CartManager — единственный владелец состояния корзины одной сессии страницы:
// список позиций, видимость панели и выбранные swatch'и.
// Все операции синхронные; мьютекс сериализует события в порядке их поступления.
type CartManager struct {
	mu sync.Mutex

	cart      *domain.Cart
	selected  map[string]string // productID -> последний выбранный цвет
	panelOpen bool
	key       string

	storage ports.SlotStorage // слот хранения корзины
	view    ports.CartView    // отрисовка
	dialogs ports.Dialogs     // alert/confirm
	catalog ports.ProductCatalog
	log     ports.Logger
}

// Option — настройка CartManager.
type Option func(*CartManager)

// WithStorageKey — ключ слота (по умолчанию DefaultStorageKey).
func WithStorageKey(key string) Option {
	return func(m *CartManager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithCatalog — каталог для AddProduct и цветов по умолчанию.
func WithCatalog(c ports.ProductCatalog) Option {
	return func(m *CartManager) { m.catalog = c }
}

// NewCartManager — DI-конструктор. Корзина пуста, пока не вызван Load/Init.
func NewCartManager(
	storage ports.SlotStorage,
	view ports.CartView,
	dialogs ports.Dialogs,
	log ports.Logger,
	opts ...Option,
) *CartManager {
	m := &CartManager{
		cart:     domain.NewCart(nil),
		selected: make(map[string]string),
		key:      DefaultStorageKey,
		storage:  storage,
		view:     view,
		dialogs:  dialogs,
		log:      log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init — загрузка из хранилища и первичная отрисовка (старт страницы).
func (m *CartManager) Init(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadLocked(ctx)
	m.renderLocked()
}

// AddItem — добавить товар в цвете color: +1 к существующей позиции или новая позиция.
// Сохраняет, перерисовывает, открывает панель и показывает уведомление.
func (m *CartManager) AddItem(ctx context.Context, id, name string, price float64, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addItemLocked(ctx, id, name, price, color)
}

// AddProduct — добавление товара из каталога по нажатию кнопки «в корзину».
// Цвет — последний выбранный swatch товара, иначе первый доступный.
func (m *CartManager) AddProduct(ctx context.Context, productID string) error {
	if m.catalog == nil {
		return ErrNoCatalog
	}
	product, err := m.catalog.Product(productID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	color := m.resolveColorLocked(productID)
	if _, chosen := m.selected[productID]; !chosen && color != "" {
		// первый swatch становится активным, как после клика
		m.selected[productID] = color
	}
	m.addItemLocked(ctx, product.ID, product.Name, product.Price, color)
	return nil
}

// RemoveItem — удалить позицию; для неизвестной пары ничего не происходит.
func (m *CartManager) RemoveItem(ctx context.Context, id, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cart.Remove(id, color) {
		return
	}
	metrics.CartMutations.WithLabelValues("remove").Inc()
	m.commitLocked(ctx)
}

// SetQuantity — выставить количество; n <= 0 эквивалентно RemoveItem. Верхней границы нет.
func (m *CartManager) SetQuantity(ctx context.Context, id, color string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setQuantityLocked(ctx, id, color, n)
}

// SetQuantityInput — изменение числового поля количества (сырое значение из input).
func (m *CartManager) SetQuantityInput(ctx context.Context, id, color, raw string) {
	m.SetQuantity(ctx, id, color, domain.ParseQuantityInput(raw))
}

// Increase — кнопка «+».
func (m *CartManager) Increase(ctx context.Context, id, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item, ok := m.cart.Find(id, color); ok && item.Quantity < math.MaxInt {
		m.setQuantityLocked(ctx, id, color, item.Quantity+1)
	}
}

// Decrease — кнопка «−»; при количестве 1 позиция удаляется.
func (m *CartManager) Decrease(ctx context.Context, id, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item, ok := m.cart.Find(id, color); ok {
		m.setQuantityLocked(ctx, id, color, item.Quantity-1)
	}
}

// Persist — сериализует весь список в слот, перезаписывая прежнее значение.
func (m *CartManager) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.persistLocked(ctx)
}

// Load — восстановление корзины из слота. Отсутствующие, битые или нарушающие
// инварианты данные дают пустую корзину; ошибка наружу не возвращается.
func (m *CartManager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadLocked(ctx)
}

// Render — перерисовка счётчика, списка и итоговой суммы.
func (m *CartManager) Render(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.renderLocked()
}

// Checkout — имитация оформления заказа. Реальной оплаты нет.
func (m *CartManager) Checkout(ctx context.Context) CheckoutResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.IsEmpty() {
		m.dialogs.Alert(ctx, EmptyCheckoutWarning)
		metrics.CheckoutResults.WithLabelValues(CheckoutEmpty.String()).Inc()
		return CheckoutEmpty
	}

	if !m.dialogs.Confirm(ctx, m.checkoutPromptLocked()) {
		metrics.CheckoutResults.WithLabelValues(CheckoutCancelled.String()).Inc()
		return CheckoutCancelled
	}

	m.dialogs.Alert(ctx, CheckoutSuccessMessage)
	m.log.Infof(ctx, "checkout completed items=%d total=%s", m.cart.Count(), domain.FormatMoney(m.cart.Total()))

	m.cart.Clear()
	metrics.CartMutations.WithLabelValues("clear").Inc()
	metrics.CheckoutResults.WithLabelValues(CheckoutCompleted.String()).Inc()
	m.commitLocked(ctx)
	m.setPanelLocked(false)
	return CheckoutCompleted
}

// CheckoutPrompt — текст подтверждения покупки с текущей суммой.
func (m *CartManager) CheckoutPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.checkoutPromptLocked()
}

// SelectColor — клик по swatch'у товара.
func (m *CartManager) SelectColor(productID, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if color == "" {
		delete(m.selected, productID)
		return
	}
	m.selected[productID] = color
}

// ResolveColor — цвет, который получит позиция при добавлении товара сейчас.
func (m *CartManager) ResolveColor(productID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.resolveColorLocked(productID)
}

// TogglePanel — переключение панели корзины (иконка, крестик, оверлей).
func (m *CartManager) TogglePanel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setPanelLocked(!m.panelOpen)
}

// OpenPanel — показать панель.
func (m *CartManager) OpenPanel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setPanelLocked(true)
}

// ClosePanel — скрыть панель.
func (m *CartManager) ClosePanel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setPanelLocked(false)
}

// PanelOpen — видна ли панель.
func (m *CartManager) PanelOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.panelOpen
}

// Items — копия текущего списка позиций.
func (m *CartManager) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.Clone()
}

// Count — сумма количеств.
func (m *CartManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.Count()
}

// Total — итог в формате отображения ("$0.00").
func (m *CartManager) Total() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.FormatMoney(m.cart.Total())
}

// IsEmpty — пуста ли корзина.
func (m *CartManager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.IsEmpty()
}

// ------вспомогательные функции------

func (m *CartManager) addItemLocked(ctx context.Context, id, name string, price float64, color string) {
	if id == "" || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		m.log.Warnf(ctx, "add ignored: invalid item id=%q price=%v", id, price)
		return
	}

	m.cart.Add(id, name, price, color)
	metrics.CartMutations.WithLabelValues("add").Inc()
	m.commitLocked(ctx)

	if !m.panelOpen {
		m.setPanelLocked(true)
	}
	m.view.Toast(fmt.Sprintf("%s added to cart", name))
}

func (m *CartManager) setQuantityLocked(ctx context.Context, id, color string, n int) {
	if !m.cart.SetQuantity(id, color, n) {
		return
	}
	op := "set_quantity"
	if n <= 0 {
		op = "remove"
	}
	metrics.CartMutations.WithLabelValues(op).Inc()
	m.commitLocked(ctx)
}

// commitLocked — сохранить и перерисовать после мутации.
func (m *CartManager) commitLocked(ctx context.Context) {
	// ошибка уже залогирована; состояние в памяти остаётся актуальным
	_ = m.persistLocked(ctx)
	m.renderLocked()
}

func (m *CartManager) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(m.cart.Clone())
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := m.storage.SetItem(ctx, m.key, string(raw)); err != nil {
		metrics.StorageErrors.WithLabelValues("persist").Inc()
		m.log.Warnf(ctx, "persist cart failed key=%s err=%v", m.key, err)
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func (m *CartManager) loadLocked(ctx context.Context) {
	m.cart = domain.NewCart(nil)

	raw, found, err := m.storage.GetItem(ctx, m.key)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("load").Inc()
		m.log.Warnf(ctx, "load cart failed key=%s err=%v (starting empty)", m.key, err)
		return
	}
	if !found || raw == "" {
		return
	}

	items, err := validate.ParseCart([]byte(raw))
	if err != nil {
		m.log.Warnf(ctx, "stored cart is malformed key=%s err=%v (starting empty)", m.key, err)
		return
	}
	m.cart = domain.NewCart(items)
	m.log.Infof(ctx, "cart loaded key=%s items=%d", m.key, len(items))
}

func (m *CartManager) renderLocked() {
	m.view.UpdateCount(m.cart.Count())
	if m.cart.IsEmpty() {
		m.view.RenderEmpty(EmptyCartMessage)
	} else {
		m.view.RenderItems(m.cart.Clone())
	}
	m.view.UpdateTotal(domain.FormatMoney(m.cart.Total()))
}

func (m *CartManager) setPanelLocked(open bool) {
	m.panelOpen = open
	m.view.SetPanelOpen(open)
}

func (m *CartManager) resolveColorLocked(productID string) string {
	color, chosen := m.selected[productID]
	if m.catalog == nil {
		return color
	}
	if chosen {
		if p, err := m.catalog.Product(productID); err == nil && p.HasColor(color) {
			return color
		}
	}
	return m.catalog.FirstColor(productID)
}

func (m *CartManager) checkoutPromptLocked() string {
	return fmt.Sprintf("Are you sure you want to complete your purchase for a total of %s?",
		domain.FormatMoney(m.cart.Total()))
}
