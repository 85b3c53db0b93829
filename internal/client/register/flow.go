// Package register — сценарий регистрации продавца.
//
// Flow проверяет форму локально (все поля заполнены, пароли совпадают) и
// только после этого обращается к бэкенду. Успешная регистрация сразу
// аутентифицирует аккаунт и переводит в консоль продавца.
package register

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

//go:generate mockgen -source=flow.go -destination=mocks/registrar_mock.go -package=mocks

// Registrar регистрирует аккаунт. Реализуется *session.Store.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

// Form — данные формы регистрации.
type Form struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// complete проверяет только пустоту полей; пробелы проверяет бэкенд.
func (f Form) complete() bool {
	return f.Name != "" &&
		f.Email != "" &&
		f.Password != "" &&
		f.PasswordConfirmation != ""
}

// Flow — состояние формы регистрации.
type Flow struct {
	sess    Registrar
	nav     view.Navigator
	printer *message.Printer
	log     *logger.ClientLogger

	mu      sync.Mutex
	loading bool
	err     string
}

// NewFlow создаёт сценарий регистрации. log может быть nil.
func NewFlow(sess Registrar, nav view.Navigator, printer *message.Printer, log *logger.ClientLogger) *Flow {
	if log == nil {
		log = logger.NewNop()
	}
	return &Flow{sess: sess, nav: nav, printer: printer, log: log}
}

// Submit отправляет форму. Возвращает true, если аккаунт создан.
//
// Незаполненная форма и несовпадающие пароли отклоняются без запроса.
func (f *Flow) Submit(ctx context.Context, form Form) bool {
	f.setError("")

	if !form.complete() {
		f.setError(f.printer.Sprintf(view.MsgFillAllFields))
		return false
	}
	if form.Password != form.PasswordConfirmation {
		f.setError(f.printer.Sprintf(view.MsgPasswordMismatch))
		return false
	}

	f.setLoading(true)
	defer f.setLoading(false)

	resp, err := f.sess.Register(ctx, models.RegisterRequest{
		Name:                 form.Name,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})

	fallback := f.printer.Sprintf(view.MsgRegisterFailed)
	if err != nil {
		f.log.Error("register", zap.String("email", form.Email), zap.Error(err))
		f.setError(view.BackendMessage(err, fallback))
		return false
	}
	if !resp.OK() {
		f.log.Error("register: unexpected status", zap.String("status", resp.Status))
		f.setError(view.EnvelopeMessage(resp.Message, fallback))
		return false
	}

	f.nav.Navigate(view.RouteAdmin)
	return true
}

// Loading сообщает, что запрос регистрации в процессе.
func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Error возвращает текущее сообщение об ошибке или пустую строку.
func (f *Flow) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}

func (f *Flow) setError(msg string) {
	f.mu.Lock()
	f.err = msg
	f.mu.Unlock()
}
