package logger

import (
	"go.uber.org/zap"
)

// S retorna el SugaredLogger del singleton. Lo usan los comandos de
// mantenimiento (cmd/migrate, cmd/seed) que loguean en estilo printf:
//
//	logger.S().Infof("seed %s: inserted=%d", path, n)
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// SNamed retorna un SugaredLogger con el nombre del comando (campo "logger").
func SNamed(cmd string) *zap.SugaredLogger {
	return Named(cmd).Sugar()
}
