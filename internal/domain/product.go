package domain

// Product — товар витрины с доступными цветами (swatch'ами).
type Product struct {
	ID     string   `json:"id"     yaml:"id"`
	Name   string   `json:"name"   yaml:"name"`
	Price  float64  `json:"price"  yaml:"price"`
	Colors []string `json:"colors" yaml:"colors"`
}

// FirstColor — первый доступный цвет или "", если цветов нет.
func (p Product) FirstColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// HasColor — есть ли у товара такой цвет.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
