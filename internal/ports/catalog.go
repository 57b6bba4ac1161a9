package ports

import "github.com/Gunvolt24/wb_cart/internal/domain"

// ProductCatalog — источник данных о товарах витрины.
type ProductCatalog interface {
	Product(id string) (domain.Product, error)
	Products() []domain.Product
	FirstColor(id string) string
}
