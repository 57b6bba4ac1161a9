// Package tui — витрина с корзиной в терминале (bubbletea).
//
// Модель не хранит корзину сама: каждое нажатие переводится в вызов CartManager,
// а тот отрисовывает результат в Screen. View только читает Screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
)

// DefaultToastDelay — сколько висит уведомление «добавлено в корзину».
const DefaultToastDelay = 3 * time.Second

type focusArea int

const (
	focusProducts focusArea = iota
	focusCart
)

// toastExpiredMsg — таймер уведомления с номером seq истёк.
type toastExpiredMsg struct{ seq int }

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF6B6B")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD93D"))
	swatchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	toastStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E1E")).Background(lipgloss.Color("#4CAF50")).Padding(0, 1)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	activeBox     = boxStyle.BorderForeground(lipgloss.Color("#5B8DEF"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#F7B801")).Padding(1, 2)
)

// Model — состояние экрана витрины.
type Model struct {
	ctx      context.Context
	cart     *usecase.CartManager
	screen   *Screen
	products []domain.Product

	keys keyMap
	help help.Model
	qty  textinput.Model

	focus         focusArea
	productCursor int
	itemCursor    int

	editing    bool
	confirming bool
	prompt     string

	toastDelay   time.Duration
	seenToastSeq int
	width        int
}

// New — модель поверх уже инициализированного менеджера (Init вызван, корзина загружена).
// screen должен быть тем же объектом, что передан менеджеру как CartView и Dialogs.
func New(ctx context.Context, cart *usecase.CartManager, screen *Screen, products []domain.Product, toastDelay time.Duration) *Model {
	if toastDelay <= 0 {
		toastDelay = DefaultToastDelay
	}

	qty := textinput.New()
	qty.Prompt = "qty: "
	qty.Placeholder = "1"
	qty.CharLimit = 6
	qty.Width = 8

	_, seq := screen.currentToast()
	return &Model{
		ctx:          ctx,
		cart:         cart,
		screen:       screen,
		products:     products,
		keys:         defaultKeys(),
		help:         help.New(),
		qty:          qty,
		toastDelay:   toastDelay,
		seenToastSeq: seq,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case toastExpiredMsg:
		m.screen.dismissToast(msg.seq)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		if timer := m.toastTimer(); timer != nil {
			return m, tea.Batch(cmd, timer)
		}
		return m, cmd
	}
	return m, nil
}

// handleKey — приоритет: alert > подтверждение покупки > ввод количества > обычный режим.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if _, ok := m.screen.topAlert(); ok {
		m.screen.popAlert()
		return nil
	}

	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.finishCheckout(true)
		case key.Matches(msg, m.keys.No):
			m.finishCheckout(false)
		}
		return nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.switchFocus()
	case key.Matches(msg, m.keys.Panel):
		m.cart.TogglePanel()
		if !m.cart.PanelOpen() {
			m.focus = focusProducts
		}
	case key.Matches(msg, m.keys.Close):
		m.cart.ClosePanel()
		m.focus = focusProducts
	case key.Matches(msg, m.keys.Checkout):
		m.startCheckout()
	case m.focus == focusCart:
		return m.handleCartKey(msg)
	default:
		m.handleProductKey(msg)
	}
	return nil
}

func (m *Model) handleProductKey(msg tea.KeyMsg) {
	if len(m.products) == 0 {
		return
	}
	p := m.products[m.productCursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.productCursor = max(0, m.productCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.productCursor = min(len(m.products)-1, m.productCursor+1)
	case key.Matches(msg, m.keys.PrevSw):
		m.cycleSwatch(p, -1)
	case key.Matches(msg, m.keys.NextSw):
		m.cycleSwatch(p, +1)
	case key.Matches(msg, m.keys.Add):
		if err := m.cart.AddProduct(m.ctx, p.ID); err != nil {
			m.screen.Alert(m.ctx, err.Error())
		}
	}
}

func (m *Model) handleCartKey(msg tea.KeyMsg) tea.Cmd {
	items := m.cart.Items()
	if len(items) == 0 {
		return nil
	}
	m.itemCursor = min(m.itemCursor, len(items)-1)
	it := items[m.itemCursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.itemCursor = max(0, m.itemCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.itemCursor = min(len(items)-1, m.itemCursor+1)
	case key.Matches(msg, m.keys.Inc):
		m.cart.Increase(m.ctx, it.ID, it.Color)
	case key.Matches(msg, m.keys.Dec):
		m.cart.Decrease(m.ctx, it.ID, it.Color)
	case key.Matches(msg, m.keys.Remove):
		m.cart.RemoveItem(m.ctx, it.ID, it.Color)
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.qty.SetValue(fmt.Sprint(it.Quantity))
		m.qty.CursorEnd()
		return m.qty.Focus()
	}
	m.clampItemCursor()
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if items := m.cart.Items(); m.itemCursor < len(items) {
			it := items[m.itemCursor]
			m.cart.SetQuantityInput(m.ctx, it.ID, it.Color, m.qty.Value())
		}
		m.stopEditing()
		return nil
	case tea.KeyEsc:
		m.stopEditing()
		return nil
	}

	var cmd tea.Cmd
	m.qty, cmd = m.qty.Update(msg)
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.qty.Blur()
	m.qty.Reset()
	m.clampItemCursor()
}

func (m *Model) switchFocus() {
	if m.focus == focusCart {
		m.focus = focusProducts
		return
	}
	if !m.cart.PanelOpen() {
		m.cart.OpenPanel()
	}
	m.focus = focusCart
	m.clampItemCursor()
}

// cycleSwatch — клик по соседнему swatch'у товара.
func (m *Model) cycleSwatch(p domain.Product, step int) {
	if len(p.Colors) == 0 {
		return
	}
	current := m.cart.ResolveColor(p.ID)
	idx := 0
	for i, c := range p.Colors {
		if c == current {
			idx = i
			break
		}
	}
	n := len(p.Colors)
	m.cart.SelectColor(p.ID, p.Colors[((idx+step)%n+n)%n])
}

func (m *Model) startCheckout() {
	if m.cart.IsEmpty() {
		// предупреждение покажет сам менеджер
		m.cart.Checkout(m.ctx)
		return
	}
	m.confirming = true
	m.prompt = m.cart.CheckoutPrompt()
}

func (m *Model) finishCheckout(answer bool) {
	m.confirming = false
	m.prompt = ""
	m.screen.Arm(answer)
	if m.cart.Checkout(m.ctx) == usecase.CheckoutCompleted {
		m.focus = focusProducts
		m.itemCursor = 0
	}
}

func (m *Model) clampItemCursor() {
	n := m.cart.Count()
	if n == 0 {
		m.itemCursor = 0
		return
	}
	if items := len(m.cart.Items()); m.itemCursor >= items {
		m.itemCursor = items - 1
	}
}

// toastTimer — таймер для нового уведомления, если оно появилось за этот шаг.
func (m *Model) toastTimer() tea.Cmd {
	text, seq := m.screen.currentToast()
	if text == "" || seq == m.seenToastSeq {
		return nil
	}
	m.seenToastSeq = seq
	return tea.Tick(m.toastDelay, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// ---------------------------- view ----------------------------

func (m *Model) View() string {
	items, count, total, empty, panelOpen := m.screen.state()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Storefront"), "  ",
		badgeStyle.Render(fmt.Sprintf("cart %d", count)), "  ",
		mutedStyle.Render(total),
	)

	body := m.renderProducts()
	if panelOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderCart(items, total, empty))
	}

	sections := []string{header, body}
	if text, _ := m.screen.currentToast(); text != "" {
		sections = append(sections, toastStyle.Render(text))
	}
	if modal := m.renderModal(); modal != "" {
		sections = append(sections, modal)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderProducts() string {
	lines := []string{titleStyle.Render("Products")}
	for i, p := range m.products {
		cursor := "  "
		name := p.Name
		if i == m.productCursor && m.focus == focusProducts {
			cursor = "› "
			name = selectedStyle.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%s%-10s %8s  %s", cursor, name, domain.FormatMoney(p.Price), m.renderSwatches(p)))
	}

	style := boxStyle
	if m.focus == focusProducts {
		style = activeBox
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSwatches(p domain.Product) string {
	active := m.cart.ResolveColor(p.ID)
	parts := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		if c == active {
			parts = append(parts, swatchStyle.Render("["+c+"]"))
			continue
		}
		parts = append(parts, mutedStyle.Render(" "+c+" "))
	}
	return strings.Join(parts, "")
}

func (m *Model) renderCart(items []domain.LineItem, total, empty string) string {
	lines := []string{titleStyle.Render("Your cart")}
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render(empty))
	}
	for i, it := range items {
		cursor := "  "
		if i == m.itemCursor && m.focus == focusCart {
			cursor = "› "
		}
		line := fmt.Sprintf("%s%s (%s) ×%d  %s", cursor, it.Name, it.Color, it.Quantity, domain.FormatMoney(it.Subtotal()))
		if i == m.itemCursor && m.focus == focusCart {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
		if i == m.itemCursor && m.editing {
			lines = append(lines, "    "+m.qty.View())
		}
	}
	lines = append(lines, "", "Total: "+total)

	style := boxStyle
	if m.focus == focusCart {
		style = activeBox
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderModal() string {
	if text, ok := m.screen.topAlert(); ok {
		return modalStyle.Render(text + "\n\n" + mutedStyle.Render("press any key"))
	}
	if m.confirming {
		return modalStyle.Render(m.prompt + "\n\n" + mutedStyle.Render("[y]es / [n]o"))
	}
	return ""
}
