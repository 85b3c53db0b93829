package view

import (
	"errors"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// FormatPrice форматирует цену с двумя знаками по правилам локали принтера:
// для pt-BR 12.5 -> "R$ 12,50", 1234.5 -> "R$ 1.234,50".
func FormatPrice(p *message.Printer, symbol string, price float64) string {
	amount := p.Sprint(number.Decimal(price, number.Scale(2)))
	if symbol == "" {
		return amount
	}
	return symbol + " " + amount
}

// Images строит URL изображений товара.
type Images struct {
	StorageURL  string // origin бэкенда, без /storage
	Placeholder string
}

// URL возвращает <StorageURL>/storage/<path> или Placeholder, если пути нет.
func (i Images) URL(path *string) string {
	if path == nil {
		return i.Placeholder
	}
	p := strings.TrimLeft(strings.TrimSpace(*path), "/")
	if p == "" {
		return i.Placeholder
	}
	return strings.TrimRight(i.StorageURL, "/") + "/storage/" + p
}

// Fallback возвращает адрес, который нужно показать после ошибки загрузки
// изображения. Повторный вызов с плейсхолдером возвращает тот же плейсхолдер.
func (i Images) Fallback(string) string {
	return i.Placeholder
}

// Item — товар, подготовленный к показу: подпись цены и URL изображения.
type Item struct {
	Product    models.Product
	PriceLabel string
	ImageURL   string
}

// NewItem готовит товар к показу.
func NewItem(p models.Product, printer *message.Printer, symbol string, images Images) Item {
	return Item{
		Product:    p,
		PriceLabel: FormatPrice(printer, symbol, p.Price.Float64()),
		ImageURL:   images.URL(p.Image),
	}
}

// BackendMessage превращает ошибку в текст для пользователя.
//
// Для *errors.APIError: ошибки полей через ", ", иначе message бэкенда,
// иначе fallback. Для сетевых и прочих ошибок всегда fallback.
func BackendMessage(err error, fallback string) string {
	var apiErr *serr.APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.HasFieldErrors() {
		if msgs := apiErr.Flatten(); len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		return msg
	}
	return fallback
}

// EnvelopeMessage возвращает message из конверта 2xx со status != success,
// иначе fallback.
func EnvelopeMessage(msg, fallback string) string {
	if msg = strings.TrimSpace(msg); msg != "" {
		return msg
	}
	return fallback
}
