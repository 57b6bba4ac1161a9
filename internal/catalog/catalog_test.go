package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/domain"
)

const sampleYAML = `
products:
  - id: "10"
    name: Hoodie
    price: 59.9
    colors: [grey, navy]
  - id: "11"
    name: Belt
    price: 15
`

func TestParse_OK(t *testing.T) {
	c, err := catalog.Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	products := c.Products()
	if len(products) != 2 || products[0].ID != "10" || products[1].Name != "Belt" {
		t.Fatalf("products: %+v", products)
	}

	p, err := c.Product("10")
	if err != nil || p.Price != 59.9 || len(p.Colors) != 2 {
		t.Fatalf("product 10: %+v err=%v", p, err)
	}
	if c.FirstColor("10") != "grey" || c.FirstColor("11") != "" || c.FirstColor("404") != "" {
		t.Fatalf("first colors")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "products: [",
		"empty id":       "products:\n  - name: X\n    price: 1\n",
		"negative price": "products:\n  - id: a\n    price: -1\n",
		"duplicate id":   "products:\n  - id: a\n  - id: a\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.Parse([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestProduct_Unknown(t *testing.T) {
	_, err := catalog.Default().Product("404")
	if !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestProducts_ReturnsCopies(t *testing.T) {
	c := catalog.Default()

	ps := c.Products()
	ps[0].Colors[0] = "mutated"
	ps[0].Name = "mutated"

	p, _ := c.Product(ps[0].ID)
	if p.Name == "mutated" || p.Colors[0] == "mutated" {
		t.Fatalf("catalog must not share memory with callers: %+v", p)
	}
}

func TestNew_CopiesColors(t *testing.T) {
	colors := []string{"red"}
	c, err := catalog.New([]domain.Product{{ID: "1", Name: "A", Colors: colors}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	colors[0] = "blue"
	if c.FirstColor("1") != "red" {
		t.Fatalf("colors must be copied")
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path → default", func(t *testing.T) {
		c, err := catalog.Load("  ")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(c.Products()) != len(catalog.Default().Products()) {
			t.Fatalf("expected default catalog")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		c, err := catalog.Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if _, err := c.Product("11"); err != nil {
			t.Fatalf("product 11: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil || !strings.Contains(err.Error(), "read") {
			t.Fatalf("expected read error, got %v", err)
		}
	})
}

func TestDefault_HasSwatches(t *testing.T) {
	for _, p := range catalog.Default().Products() {
		if p.ID == "" || p.Name == "" || p.Price < 0 || len(p.Colors) == 0 {
			t.Fatalf("bad default product: %+v", p)
		}
	}
}
