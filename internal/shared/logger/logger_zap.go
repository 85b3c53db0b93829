// Package logger содержит общий логгер клиента маркетплейса.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), и метод для логирования исходящих HTTP-запросов к бэкенду.
// В stdout логгер ничего не пишет: stdout принадлежит CLI.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName — имя файла логов внутри директории логов.
const LogFileName = "client.log"

// ClientLogger представляет обёртку над zap.Logger для логирования событий клиента.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type ClientLogger struct {
	*zap.Logger
}

// NewClientLogger создаёт файловый zap-логгер.
//
// Логи записываются в файл <dir>/client.log.
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewClientLogger(dir string) *ClientLogger {
	_ = os.MkdirAll(dir, 0o700)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFileName),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // дней
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)

	return &ClientLogger{Logger: zap.New(core, zap.AddCaller())}
}

// NewNop возвращает логгер, который ничего не пишет. Используется в тестах.
func NewNop() *ClientLogger {
	return &ClientLogger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об исходящем HTTP-запросе.
//
// method и uri — параметры запроса,
// requestID — значение заголовка X-Request-ID,
// status — HTTP-статус ответа (0, если ответа не было),
// duration — длительность запроса в миллисекундах.
func (logger *ClientLogger) LogRequest(method, uri, requestID string, status int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
