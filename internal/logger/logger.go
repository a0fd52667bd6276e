package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields = logrus.Fields

// L é a instância global usada pelo resto do serviço.
var L = logrus.New()

// Setup configura formato e nível: JSON em produção, texto legível em dev.
func Setup(level string, production bool) {
	L.SetOutput(os.Stdout)

	if production {
		L.SetFormatter(&logrus.JSONFormatter{})
	} else {
		L.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	L.SetLevel(lvl)
}

func WithFields(fields Fields) *logrus.Entry {
	return L.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return L.WithError(err)
}
