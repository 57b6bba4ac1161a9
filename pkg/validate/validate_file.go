package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Kind — что лежит во входных данных: содержимое слотов корзины или события UI.
type Kind string

const (
	KindCart   Kind = "cart"
	KindEvents Kind = "events"
)

// Report — итог проверки входных данных.
type Report struct {
	Kind    Kind
	Format  InputFormat
	Valid   int
	Invalid int
}

func (r Report) String() string {
	return fmt.Sprintf("%s/%s: %d valid / %d invalid", r.Kind, r.Format, r.Valid, r.Invalid)
}

// ValidateFile — проверяет файл (path == "" — stdin) и пишет валидные записи каноническим JSON в ow.
// Для корзины JSON — один слот (массив позиций), JSONL — слот на строку.
// Для событий JSON — одно событие, JSONL — поток сообщений в формате Kafka.
// Невалидная запись не прерывает поток, но делает итог ошибкой ErrInvalidCart / ErrInvalidEvent.
func ValidateFile(ctx context.Context, validator *CartValidator, kind Kind, path string, format InputFormat, ow io.Writer) (Report, error) {
	rep := Report{Kind: kind, Format: format}
	if kind != KindCart && kind != KindEvents {
		return rep, fmt.Errorf("unsupported kind: %s", kind)
	}

	in := io.Reader(os.Stdin)
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return rep, fmt.Errorf("open file: %w", err)
		}
		defer file.Close()
		in = file
	}

	br := bufio.NewReader(in)
	if rep.Format == FormatAuto {
		rep.Format = detectFormat(path, br)
	}

	switch {
	case rep.Format == FormatJSON:
		raw, err := io.ReadAll(br)
		if err != nil {
			return rep, fmt.Errorf("read file: %w", err)
		}
		return validateDocument(ctx, validator, rep, raw, ow)

	case rep.Format == FormatJSONL && kind == KindCart:
		res, err := ValidateJSONLStream(ctx, validator, br, ow)
		rep.Valid, rep.Invalid = res.ValidLinesCount, res.InvalidLinesCount
		if err != nil {
			return rep, err
		}
		if rep.Invalid > 0 {
			return rep, fmt.Errorf("%w: %d invalid carts", ErrInvalidCart, rep.Invalid)
		}
		return rep, nil

	case rep.Format == FormatJSONL:
		res, err := ValidateEventStream(ctx, br, ow)
		rep.Valid, rep.Invalid = res.ValidLinesCount, res.InvalidLinesCount
		if err != nil {
			return rep, err
		}
		if rep.Invalid > 0 {
			return rep, fmt.Errorf("%w: %d invalid events", ErrInvalidEvent, rep.Invalid)
		}
		return rep, nil

	default:
		return rep, fmt.Errorf("unsupported format: %s", rep.Format)
	}
}

// validateDocument — один JSON-документ: слот корзины или событие.
func validateDocument(ctx context.Context, validator *CartValidator, rep Report, raw []byte, ow io.Writer) (Report, error) {
	var (
		value any
		err   error
	)
	if rep.Kind == KindCart {
		value, err = ValidateCartFromJSON(ctx, validator, raw)
	} else {
		value, err = ParseEvent(ctx, raw)
	}
	if err != nil {
		rep.Invalid = 1
		return rep, err
	}

	canonical, _ := json.Marshal(value)
	if _, err := ow.Write(append(canonical, '\n')); err != nil {
		return rep, fmt.Errorf("write json: %w", err)
	}
	rep.Valid = 1
	return rep, nil
}

// detectFormat — формат по расширению, иначе по первому значащему байту:
// слот корзины — массив, поэтому '[' означает JSON-документ, '{' — поток объектов.
// Для stdin и неизвестного содержимого — JSONL.
func detectFormat(path string, br *bufio.Reader) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".json":
		return FormatJSON
	}

	// Peek не сдвигает позицию чтения
	head, _ := br.Peek(512)
	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	if len(head) > 0 && head[0] == '[' {
		return FormatJSON
	}
	return FormatJSONL
}
