// pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный экземпляр логгера для всего приложения.
var Log *logrus.Logger

// Init настраивает глобальный логгер. Вызывается один раз при старте
// (main или TestMain). Уровень берётся из LOG_LEVEL, формат из LOG_FORMAT.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" — для прод-сборок и сбора логов, текст — для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// InitSilent инициализирует логгер без вывода. Используется в тестах,
// где логи только мешают читать результат.
func InitSilent() {
	Log = logrus.New()
	Log.SetLevel(logrus.PanicLevel)
	Log.SetOutput(io.Discard)
}
