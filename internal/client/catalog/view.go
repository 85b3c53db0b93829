// Package catalog — публичная витрина товаров.
//
// View загружает весь каталог один раз при Init и показывает каждый товар
// с отформатированной ценой и URL изображения. Повторов при ошибке нет:
// пользователь видит локализованное сообщение, диагностика уходит в лог.
package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

//go:generate mockgen -source=view.go -destination=mocks/lister_mock.go -package=mocks

// Lister — публичная часть репозитория товаров. Реализуется *products.Repository.
type Lister interface {
	List(ctx context.Context) (*models.ProductResponse, error)
	Get(ctx context.Context, id int64) (*models.ProductResponse, error)
}

// State — состояние витрины.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item — товар витрины.
type Item = view.Item

// Snapshot — копия состояния витрины.
type Snapshot struct {
	State State
	Items []Item
	Error string
}

// View — витрина.
type View struct {
	repo    Lister
	images  view.Images
	printer *message.Printer
	symbol  string
	log     *logger.ClientLogger

	mu    sync.Mutex
	state State
	items []Item
	err   string
}

// NewView создаёт витрину в состоянии Loading. log может быть nil.
func NewView(repo Lister, images view.Images, printer *message.Printer, symbol string, log *logger.ClientLogger) *View {
	if log == nil {
		log = logger.NewNop()
	}
	return &View{
		repo:    repo,
		images:  images,
		printer: printer,
		symbol:  symbol,
		log:     log,
		state:   StateLoading,
	}
}

// Init загружает каталог.
func (v *View) Init(ctx context.Context) {
	v.mu.Lock()
	v.state = StateLoading
	v.err = ""
	v.mu.Unlock()

	resp, err := v.repo.List(ctx)
	if err != nil {
		v.log.Error("load catalog", zap.Error(err))
		v.fail(view.MsgLoadProductsFailed)
		return
	}
	if !resp.OK() {
		v.log.Error("load catalog: unexpected status", zap.String("status", resp.Status), zap.String("message", resp.Message))
		v.fail(view.MsgLoadProductsFailed)
		return
	}

	list := resp.Data.List()
	items := make([]Item, 0, len(list))
	for _, p := range list {
		items = append(items, v.item(p))
	}

	v.mu.Lock()
	v.items = items
	v.state = StateReady
	v.mu.Unlock()
}

// Reload повторяет загрузку (по явному действию пользователя).
func (v *View) Reload(ctx context.Context) {
	v.Init(ctx)
}

// Teardown ничего не держит: витрина не подписана на сессию.
func (v *View) Teardown() {}

// ImageFailed переключает изображение товара index на плейсхолдер.
func (v *View) ImageFailed(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.items) {
		return
	}
	v.items[index].ImageURL = v.images.Fallback(v.items[index].ImageURL)
}

// Snapshot возвращает копию текущего состояния.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	items := make([]Item, len(v.items))
	copy(items, v.items)
	return Snapshot{State: v.state, Items: items, Error: v.err}
}

// Detail загружает один товар для карточки.
//
// Ошибка возвращается как есть, текст для пользователя строит DetailMessage.
func (v *View) Detail(ctx context.Context, id int64) (*Item, error) {
	resp, err := v.repo.Get(ctx, id)
	if err != nil {
		v.log.Error("load product", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	p := resp.Data.One()
	if !resp.OK() || p == nil {
		v.log.Error("load product: unexpected response", zap.Int64("id", id), zap.String("status", resp.Status))
		return nil, &unexpectedResponse{status: resp.Status, message: resp.Message}
	}
	item := v.item(*p)
	return &item, nil
}

// DetailMessage — текст ошибки Detail для пользователя.
func (v *View) DetailMessage(err error) string {
	fallback := v.printer.Sprintf(view.MsgLoadProductFailed)
	var u *unexpectedResponse
	if errors.As(err, &u) {
		return view.EnvelopeMessage(u.message, fallback)
	}
	return view.BackendMessage(err, fallback)
}

func (v *View) item(p models.Product) Item {
	return view.NewItem(p, v.printer, v.symbol, v.images)
}

func (v *View) fail(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.items = nil
	v.state = StateFailed
	v.err = v.printer.Sprintf(key)
}

// unexpectedResponse — ответ 2xx без status=success или без товара.
type unexpectedResponse struct {
	status  string
	message string
}

func (e *unexpectedResponse) Error() string {
	if e.message != "" {
		return "unexpected response: " + e.message
	}
	return "unexpected response status " + e.status
}
