package logging

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that writes to the console and to a dated file
// under dir (created if missing). A bad dir degrades to console only.
func New(dir string) (*zap.Logger, error) {
	consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), zapcore.InfoLevel),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			name := "claims_" + time.Now().Format("2006-01-02") + ".log"
			f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
				cores = append(cores, zapcore.NewCore(fileEnc, zapcore.Lock(f), zapcore.DebugLevel))
			}
		}
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
