// Package models содержит модели данных REST API маркетплейса,
// общие для транспорта (api), репозитория товаров и view-слоя.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// StatusSuccess — значение поля status в успешных ответах бэкенда.
const StatusSuccess = "success"

// User — снимок аутентифицированного пользователя.
//
// Создаётся бэкендом при регистрации. Клиент держит его только как
// кэш "кто сейчас залогинен": очищается при logout или неудачном восстановлении сессии.
type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ProductOwner — краткая информация о владельце, которую бэкенд может вложить в товар.
type ProductOwner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product — товар продавца.
//
// Поля:
//   - ID: идентификатор товара
//   - Name/Description: название и описание
//   - Price: цена (положительная, бэкенд отдаёт числом или строкой "12.50")
//   - Image: относительный путь изображения в storage (nil, если нет)
//   - UserID: владелец товара
//   - User: опциональная сводка о владельце
type Product struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       Price         `json:"price"`
	Image       *string       `json:"image,omitempty"`
	UserID      int64         `json:"user_id"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
	User        *ProductOwner `json:"user,omitempty"`
}

// Price — цена товара. Декодируется как из JSON-числа, так и из строки.
type Price float64

// UnmarshalJSON принимает 12.5, "12.50" и null (как 0).
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*p = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Float64 возвращает цену как float64.
func (p Price) Float64() float64 { return float64(p) }

// ProductData — поле data ответа: один товар или массив товаров.
type ProductData struct {
	items  []Product
	single bool
}

// NewProductData собирает ProductData из списка (для тестов и заглушек).
func NewProductData(items ...Product) ProductData {
	return ProductData{items: items}
}

// UnmarshalJSON различает объект и массив.
func (d *ProductData) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		d.items, d.single = nil, false
		return nil
	}
	if b[0] == '[' {
		var items []Product
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		d.items, d.single = items, false
		return nil
	}
	var one Product
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	d.items, d.single = []Product{one}, true
	return nil
}

// MarshalJSON кодирует обратно в исходную форму (объект или массив).
func (d ProductData) MarshalJSON() ([]byte, error) {
	if d.single && len(d.items) == 1 {
		return json.Marshal(d.items[0])
	}
	if d.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.items)
}

// List всегда возвращает срез: одиночный объект оборачивается.
func (d ProductData) List() []Product {
	out := make([]Product, len(d.items))
	copy(out, d.items)
	return out
}

// One возвращает первый товар или nil.
func (d ProductData) One() *Product {
	if len(d.items) == 0 {
		return nil
	}
	p := d.items[0]
	return &p
}

// ProductResponse — единый конверт всех операций с товарами.
//
// Репозиторий не интерпретирует Status: что считать успехом, решает вызывающий.
type ProductResponse struct {
	Status  string      `json:"status"`
	Data    ProductData `json:"data"`
	Message string      `json:"message,omitempty"`
}

// OK сообщает, что Status == "success".
func (r *ProductResponse) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// ImageFile — бинарное изображение, прикладываемое к форме товара.
//
// Поле только на запись: существующее изображение никогда не подставляется в форму.
type ImageFile struct {
	Name    string
	Content io.Reader
}

// ProductInput — данные формы создания/редактирования товара.
// Существует только пока форма открыта и никогда не сохраняется.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       *ImageFile
}
