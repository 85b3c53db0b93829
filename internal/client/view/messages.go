// Package view содержит общие помощники представления для catalog, register и console:
// локализованные сообщения, подпись цены, URL изображения, навигацию,
// подтверждение действий и разбор ошибок бэкенда в текст для пользователя.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Ключи сообщений. Ключ совпадает с текстом на pt-BR.
const (
	MsgLoadProductsFailed   = "Erro ao carregar produtos."
	MsgLoadMyProductsFailed = "Erro ao carregar seus produtos."
	MsgLoadProductFailed    = "Erro ao carregar produto."
	MsgFillAllFields        = "Por favor, preencha todos os campos."
	MsgPasswordMismatch     = "As senhas não coincidem."
	MsgRegisterFailed       = "Erro ao criar conta. Tente novamente."
	MsgFillFieldsCorrectly  = "Por favor, preencha todos os campos corretamente."
	MsgSaveFailed           = "Erro ao salvar produto."
	MsgCreated              = "Produto criado com sucesso!"
	MsgUpdated              = "Produto atualizado com sucesso!"
	MsgDeleted              = "Produto excluído com sucesso!"
	MsgDeleteFailed         = "Erro ao excluir produto."
	MsgConfirmDelete        = "Tem certeza que deseja excluir o produto \"%s\"?"
	MsgLoginFailed          = "Erro ao fazer login. Verifique suas credenciais."
	MsgNoProducts           = "Nenhum produto encontrado."
	MsgNotLoggedIn          = "Você não está logado."
)

var english = map[string]string{
	MsgLoadProductsFailed:   "Failed to load products.",
	MsgLoadMyProductsFailed: "Failed to load your products.",
	MsgLoadProductFailed:    "Failed to load product.",
	MsgFillAllFields:        "Please fill in all fields.",
	MsgPasswordMismatch:     "Passwords do not match.",
	MsgRegisterFailed:       "Failed to create account. Please try again.",
	MsgFillFieldsCorrectly:  "Please fill in all fields correctly.",
	MsgSaveFailed:           "Failed to save product.",
	MsgCreated:              "Product created successfully!",
	MsgUpdated:              "Product updated successfully!",
	MsgDeleted:              "Product deleted successfully!",
	MsgDeleteFailed:         "Failed to delete product.",
	MsgConfirmDelete:        "Are you sure you want to delete the product \"%s\"?",
	MsgLoginFailed:          "Login failed. Check your credentials.",
	MsgNoProducts:           "No products found.",
	MsgNotLoggedIn:          "You are not logged in.",
}

// Messages — каталог сообщений клиента (pt-BR по умолчанию, en).
var Messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	for key, en := range english {
		_ = b.SetString(language.BrazilianPortuguese, key, key)
		_ = b.SetString(language.English, key, en)
	}
	return b
}

// NewPrinter возвращает принтер сообщений для локали.
// Неразобранная локаль трактуется как pt-BR.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return message.NewPrinter(tag, message.Catalog(Messages))
}
