// Package errors содержит общие ошибки клиента маркетплейса
// и тип APIError для ответов, отклонённых бэкендом.
//
// Локальные ошибки валидации, сетевые ошибки и ошибки бэкенда
// различаются через errors.Is / errors.As на границе компонентов (view).
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неавторизован (бэкенд ответил 401 или токен отсутствует)
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Бэкенд ответил 5xx
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// В хранилище нет bearer токена
	ErrNoToken = errors.New("no access token, run: marketplace login")
	// Сетевая ошибка: запрос не дошёл до бэкенда или ответ не прочитан
	ErrTransport = errors.New("transport error")
)
