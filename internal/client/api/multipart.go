package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// Field — текстовое поле multipart формы. Порядок полей сохраняется.
type Field struct {
	Name  string
	Value string
}

// ImageField — имя части multipart формы с бинарным изображением.
const ImageField = "image"

// PostMultipart выполняет POST-запрос с телом multipart/form-data.
//
// Параметры:
//   - fields: текстовые поля формы в порядке добавления;
//   - file: опциональное изображение; если nil или без Content — часть не добавляется;
//   - resp/authToken: как в PostJSON.
//
// Тело собирается в памяти целиком: изображения товаров небольшие.
func (c *Client) PostMultipart(ctx context.Context, path string, fields []Field, file *models.ImageFile, resp any, authToken string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}

	if file != nil && file.Content != nil {
		name := filepath.Base(file.Name)
		if name == "." || name == string(filepath.Separator) {
			name = ImageField
		}
		part, err := w.CreateFormFile(ImageField, name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("read image %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(r, resp, authToken)
}
