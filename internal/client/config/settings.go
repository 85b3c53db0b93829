// Package config отвечает за локальную конфигурацию клиента маркетплейса:
//   - чтение config.yaml (адрес API, адрес storage, локаль, таймаут и т.д.);
//   - подстановку переменных окружения вида ${MARKETPLACE_API_URL};
//   - проставление дефолтов и валидацию;
//   - долговременное хранение bearer токена (файл credentials.json).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Дефолтные значения настроек.
const (
	DefaultAPIURL           = "http://127.0.0.1:8000/api"
	DefaultStorageURL       = "http://127.0.0.1:8000"
	DefaultPlaceholderImage = "assets/images/placeholder-food.svg"
	DefaultLocale           = "pt-BR"
	DefaultCurrencySymbol   = "R$"
	DefaultTimeout          = 10 * time.Second
)

// Settings — корневая структура конфига клиента.
type Settings struct {
	APIURL           string        `yaml:"api_url"`     // базовый адрес REST API
	StorageURL       string        `yaml:"storage_url"` // origin, под которым лежит /storage/<path>
	PlaceholderImage string        `yaml:"placeholder_image"`
	Locale           string        `yaml:"locale"` // BCP 47, например pt-BR
	CurrencySymbol   string        `yaml:"currency_symbol"`
	Timeout          time.Duration `yaml:"timeout"`      // таймаут одного HTTP-запроса
	InsecureTLS      bool          `yaml:"insecure_tls"` // только для dev
	TokenPath        string        `yaml:"token_path"`
	LogDir           string        `yaml:"log_dir"`
}

// HomeDir возвращает директорию клиента: <home>/.marketplace.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".marketplace"), nil
}

// DefaultConfigPath возвращает путь к config.yaml в домашней директории пользователя.
func DefaultConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты и валидирует.
//
// Если файла нет — используются только дефолты и переменные окружения.
func Load(path string) (*Settings, error) {
	var s Settings

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw = []byte(ExpandEnvStrict(string(raw)))
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// дефолтный конфиг, если файла нет
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := ApplyDefaults(&s); err != nil {
		return nil, err
	}
	s.ApplyEnvOverrides()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	re := regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
//
// Ошибка возможна только при вычислении путей в домашней директории.
func ApplyDefaults(s *Settings) error {
	if s.APIURL == "" {
		s.APIURL = DefaultAPIURL
	}
	if s.StorageURL == "" {
		s.StorageURL = DefaultStorageURL
	}
	if s.PlaceholderImage == "" {
		s.PlaceholderImage = DefaultPlaceholderImage
	}
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = DefaultCurrencySymbol
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.TokenPath == "" || s.LogDir == "" {
		dir, err := HomeDir()
		if err != nil {
			return err
		}
		if s.TokenPath == "" {
			s.TokenPath = filepath.Join(dir, "credentials.json")
		}
		if s.LogDir == "" {
			s.LogDir = filepath.Join(dir, "logs")
		}
	}
	return nil
}

// ApplyEnvOverrides позволяет переопределить адреса и локаль через переменные
// окружения без ${...} в yaml. Например MARKETPLACE_API_URL=https://shop.example/api.
func (s *Settings) ApplyEnvOverrides() {
	if v := os.Getenv("MARKETPLACE_API_URL"); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv("MARKETPLACE_STORAGE_URL"); v != "" {
		s.StorageURL = v
	}
	if v := os.Getenv("MARKETPLACE_LOCALE"); v != "" {
		s.Locale = v
	}
}

// Validate проверяет, что конфиг заполнен корректно.
func (s *Settings) Validate() error {
	for name, v := range map[string]string{
		"api_url":     s.APIURL,
		"storage_url": s.StorageURL,
		"token_path":  s.TokenPath,
		"log_dir":     s.LogDir,
	} {
		if strings.Contains(v, "${") && strings.Contains(v, "}") {
			return fmt.Errorf("%s содержит неподставленную переменную: %q", name, v)
		}
	}

	if err := validateHTTPURL("api_url", s.APIURL); err != nil {
		return err
	}
	if err := validateHTTPURL("storage_url", s.StorageURL); err != nil {
		return err
	}

	if _, err := language.Parse(s.Locale); err != nil {
		return fmt.Errorf("locale %q некорректна: %w", s.Locale, err)
	}
	if s.Timeout < 0 {
		return errors.New("timeout не может быть отрицательным")
	}
	if s.TokenPath == "" {
		return errors.New("token_path обязателен")
	}
	return nil
}

// LanguageTag возвращает разобранную локаль. Вызывать после Validate.
func (s *Settings) LanguageTag() language.Tag {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.BrazilianPortuguese
	}
	return tag
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s некорректен: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s должен быть абсолютным http(s) адресом, сейчас %q", name, raw)
	}
	return nil
}
