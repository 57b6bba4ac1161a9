// Package catalog — каталог товаров витрины (id, название, цена, цвета).
// Каталог неизменяем после загрузки, поэтому безопасен для конкурентного чтения.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProduct — товара с таким id нет в каталоге.
var ErrUnknownProduct = errors.New("unknown product")

// Catalog — упорядоченный набор товаров с доступом по id.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

type file struct {
	Products []domain.Product `yaml:"products"`
}

// New — собирает каталог из списка; пустые и повторяющиеся id — ошибка.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: products[%d]: empty id", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: product %q: negative price", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		p.Colors = append([]string(nil), p.Colors...)
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Parse — каталог из YAML-документа вида `products: [...]`.
func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	return New(f.Products)
}

// Load — читает каталог из файла; пустой путь — встроенный каталог по умолчанию.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Product — товар по id.
func (c *Catalog) Product(id string) (domain.Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	p := c.products[idx]
	p.Colors = append([]string(nil), p.Colors...)
	return p, nil
}

// Products — копия списка товаров в исходном порядке.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		p.Colors = append([]string(nil), p.Colors...)
		out[i] = p
	}
	return out
}

// FirstColor — цвет по умолчанию для товара ("" для неизвестного товара).
func (c *Catalog) FirstColor(id string) string {
	idx, ok := c.byID[id]
	if !ok {
		return ""
	}
	return c.products[idx].FirstColor()
}

// Default — витрина по умолчанию.
func Default() *Catalog {
	c, _ := New([]domain.Product{
		{ID: "1", Name: "Shirt", Price: 19.99, Colors: []string{"red", "blue", "black"}},
		{ID: "2", Name: "Jeans", Price: 49.99, Colors: []string{"blue", "black"}},
		{ID: "3", Name: "Sneakers", Price: 79.5, Colors: []string{"white", "black", "green"}},
		{ID: "4", Name: "Cap", Price: 12, Colors: []string{"red", "white"}},
	})
	return c
}
