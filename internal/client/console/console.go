// Package console — консоль продавца: список своих товаров, форма
// создания/редактирования, удаление с подтверждением и выход.
//
// Console доступна только аутентифицированному продавцу. Без токена Init
// сразу уводит на /login и не делает ни одного запроса. Пока консоль открыта,
// она подписана на текущего пользователя сессии: если сессия очищена
// (logout, протухший токен), консоль уводит на /login.
package console

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

//go:generate mockgen -source=console.go -destination=mocks/console_mock.go -package=mocks

// Session — часть сессии, нужная консоли. Реализуется *session.Store.
type Session interface {
	IsAuthenticated() bool
	CurrentUser() *models.User
	Subscribe(fn func(*models.User)) (unsubscribe func())
	Logout(ctx context.Context) error
}

// Repository — защищённая часть репозитория товаров. Реализуется *products.Repository.
type Repository interface {
	ListMine(ctx context.Context) (*models.ProductResponse, error)
	Create(ctx context.Context, in models.ProductInput) (*models.ProductResponse, error)
	Update(ctx context.Context, id int64, in models.ProductInput) (*models.ProductResponse, error)
	Delete(ctx context.Context, id int64) (*models.ProductResponse, error)
}

// Mode — что сейчас показывает консоль.
type Mode int

const (
	ModeLoading Mode = iota
	ModeList
	ModeForm
)

// FormMode — создание или редактирование.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

// Draft — содержимое открытой формы.
//
// Image только на запись: при редактировании существующее изображение
// в форму не подставляется, и без нового файла бэкенд оставляет старое.
type Draft struct {
	Name        string
	Description string
	Price       float64
	Image       *models.ImageFile
}

func (d Draft) valid() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Description) != "" &&
		d.Price > 0
}

func (d Draft) input() models.ProductInput {
	return models.ProductInput{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       d.Price,
		Image:       d.Image,
	}
}

// Snapshot — копия состояния консоли.
type Snapshot struct {
	Mode       Mode
	Loading    bool
	Submitting bool
	FormOpen   bool
	FormMode   FormMode
	EditingID  int64
	Draft      Draft
	Items      []view.Item
	Error      string
	Success    string
	User       *models.User
}

// Console — консоль продавца.
type Console struct {
	sess    Session
	repo    Repository
	nav     view.Navigator
	confirm view.Confirmer
	printer *message.Printer
	symbol  string
	images  view.Images
	log     *logger.ClientLogger

	mu         sync.Mutex
	unsub      func()
	user       *models.User
	loading    bool
	submitting bool
	formOpen   bool
	formMode   FormMode
	editingID  int64
	draft      Draft
	items      []view.Item
	errMsg     string
	success    string
}

// NewConsole создаёт консоль. log может быть nil.
func NewConsole(
	sess Session,
	repo Repository,
	nav view.Navigator,
	confirm view.Confirmer,
	printer *message.Printer,
	symbol string,
	images view.Images,
	log *logger.ClientLogger,
) *Console {
	if log == nil {
		log = logger.NewNop()
	}
	return &Console{
		sess:    sess,
		repo:    repo,
		nav:     nav,
		confirm: confirm,
		printer: printer,
		symbol:  symbol,
		images:  images,
		log:     log,
		loading: true,
	}
}

// Init открывает консоль.
//
// Без токена: переход на /login, подписки и запросов нет.
// С токеном: подписка на пользователя сессии и загрузка своих товаров.
func (c *Console) Init(ctx context.Context) {
	if !c.sess.IsAuthenticated() {
		c.nav.Navigate(view.RouteLogin)
		return
	}

	unsub := c.sess.Subscribe(c.onUser)
	c.mu.Lock()
	if c.unsub != nil {
		c.unsub()
	}
	c.unsub = unsub
	c.mu.Unlock()

	c.LoadMine(ctx)
}

// onUser получает пользователя сессии. nil при живом токене означает
// "ещё не восстановлен" и перехода не вызывает.
func (c *Console) onUser(u *models.User) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()

	if u == nil && !c.sess.IsAuthenticated() {
		c.nav.Navigate(view.RouteLogin)
	}
}

// Teardown отписывается от сессии.
func (c *Console) Teardown() {
	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// LoadMine загружает товары текущего продавца.
func (c *Console) LoadMine(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	resp, err := c.repo.ListMine(ctx)
	if err != nil {
		c.log.Error("load seller products", zap.Error(err))
		c.finishLoad(nil, c.printer.Sprintf(view.MsgLoadMyProductsFailed))
		return
	}
	if !resp.OK() {
		c.log.Error("load seller products: unexpected status", zap.String("status", resp.Status), zap.String("message", resp.Message))
		c.finishLoad(nil, c.printer.Sprintf(view.MsgLoadMyProductsFailed))
		return
	}

	list := resp.Data.List()
	items := make([]view.Item, 0, len(list))
	for _, p := range list {
		items = append(items, view.NewItem(p, c.printer, c.symbol, c.images))
	}
	c.finishLoad(items, "")
}

func (c *Console) finishLoad(items []view.Item, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	c.errMsg = errMsg
	if errMsg == "" {
		c.items = items
	}
}

// OpenCreate открывает пустую форму создания.
func (c *Console) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formOpen = true
	c.formMode = FormCreate
	c.editingID = 0
	c.draft = Draft{}
	c.errMsg, c.success = "", ""
}

// OpenEdit открывает форму редактирования p, заполняя название, описание и цену.
func (c *Console) OpenEdit(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formOpen = true
	c.formMode = FormEdit
	c.editingID = p.ID
	c.draft = Draft{Name: p.Name, Description: p.Description, Price: p.Price.Float64()}
	c.errMsg, c.success = "", ""
}

// Cancel закрывает форму и сбрасывает сообщения.
func (c *Console) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeFormLocked()
	c.errMsg, c.success = "", ""
}

func (c *Console) closeFormLocked() {
	c.formOpen = false
	c.formMode = FormCreate
	c.editingID = 0
	c.draft = Draft{}
}

// UpdateForm меняет черновик открытой формы.
func (c *Console) UpdateForm(fn func(*Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.formOpen {
		return
	}
	fn(&c.draft)
}

// SetImage прикладывает изображение к открытой форме (nil убирает его).
func (c *Console) SetImage(img *models.ImageFile) {
	c.UpdateForm(func(d *Draft) { d.Image = img })
}

// Submit сохраняет открытую форму. Возвращает true при успехе.
//
// Пустое название или описание и цена <= 0 отклоняются без запроса.
// После успеха форма закрывается и список перезагружается.
func (c *Console) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if !c.formOpen {
		c.mu.Unlock()
		return false
	}
	draft, mode, id := c.draft, c.formMode, c.editingID
	c.errMsg, c.success = "", ""
	c.mu.Unlock()

	if !draft.valid() {
		c.setMessages(c.printer.Sprintf(view.MsgFillFieldsCorrectly), "")
		return false
	}

	c.setSubmitting(true)
	var (
		resp *models.ProductResponse
		err  error
	)
	if mode == FormEdit {
		resp, err = c.repo.Update(ctx, id, draft.input())
	} else {
		resp, err = c.repo.Create(ctx, draft.input())
	}
	c.setSubmitting(false)

	fallback := c.printer.Sprintf(view.MsgSaveFailed)
	if err != nil {
		c.log.Error("save product", zap.Int64("id", id), zap.Error(err))
		c.setMessages(view.BackendMessage(err, fallback), "")
		return false
	}
	if !resp.OK() {
		c.log.Error("save product: unexpected status", zap.Int64("id", id), zap.String("status", resp.Status))
		c.setMessages(view.EnvelopeMessage(resp.Message, fallback), "")
		return false
	}

	okMsg := view.MsgCreated
	if mode == FormEdit {
		okMsg = view.MsgUpdated
	}
	c.mu.Lock()
	c.closeFormLocked()
	c.success = c.printer.Sprintf(okMsg)
	c.mu.Unlock()

	c.LoadMine(ctx)
	return true
}

// Delete удаляет p после подтверждения пользователя. Возвращает true при успехе.
//
// При отказе запроса нет. При ошибке список остаётся как был.
func (c *Console) Delete(ctx context.Context, p models.Product) bool {
	if !c.confirm.Confirm(c.printer.Sprintf(view.MsgConfirmDelete, p.Name)) {
		return false
	}
	c.setMessages("", "")

	resp, err := c.repo.Delete(ctx, p.ID)
	if err != nil {
		c.log.Error("delete product", zap.Int64("id", p.ID), zap.Error(err))
		c.setMessages(c.printer.Sprintf(view.MsgDeleteFailed), "")
		return false
	}
	// 204 приходит пустым конвертом
	if resp.Status != "" && !resp.OK() {
		c.log.Error("delete product: unexpected status", zap.Int64("id", p.ID), zap.String("status", resp.Status))
		c.setMessages(c.printer.Sprintf(view.MsgDeleteFailed), "")
		return false
	}

	c.setMessages("", c.printer.Sprintf(view.MsgDeleted))
	c.LoadMine(ctx)
	return true
}

// Logout завершает сессию и всегда уводит на главную, даже если бэкенд недоступен.
func (c *Console) Logout(ctx context.Context) {
	c.Teardown()
	if err := c.sess.Logout(ctx); err != nil {
		c.log.Warn("logout", zap.Error(err))
	}
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	c.nav.Navigate(view.RouteHome)
}

// Snapshot возвращает копию текущего состояния.
func (c *Console) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]view.Item, len(c.items))
	copy(items, c.items)

	mode := ModeList
	switch {
	case c.formOpen:
		mode = ModeForm
	case c.loading:
		mode = ModeLoading
	}

	return Snapshot{
		Mode:       mode,
		Loading:    c.loading,
		Submitting: c.submitting,
		FormOpen:   c.formOpen,
		FormMode:   c.formMode,
		EditingID:  c.editingID,
		Draft:      c.draft,
		Items:      items,
		Error:      c.errMsg,
		Success:    c.success,
		User:       c.user,
	}
}

// Item возвращает товар из текущего списка по ID.
func (c *Console) Item(id int64) (view.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.Product.ID == id {
			return it, true
		}
	}
	return view.Item{}, false
}

func (c *Console) setMessages(errMsg, success string) {
	c.mu.Lock()
	c.errMsg, c.success = errMsg, success
	c.mu.Unlock()
}

func (c *Console) setSubmitting(v bool) {
	c.mu.Lock()
	c.submitting = v
	c.mu.Unlock()
}
