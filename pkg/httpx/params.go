package httpx

// EmptyColorParam — сегмент пути для позиции без цвета (пустой сегмент gin не сопоставит).
const EmptyColorParam = "-"

// ColorParam — цвет позиции из сегмента пути.
func ColorParam(raw string) string {
	if raw == EmptyColorParam {
		return ""
	}
	return raw
}

// ColorSegment — обратное преобразование для построения ссылок на позицию.
func ColorSegment(color string) string {
	if color == "" {
		return EmptyColorParam
	}
	return color
}
