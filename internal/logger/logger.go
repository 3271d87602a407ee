// File: internal/logger/logger.go
package logger

import (
	"go.uber.org/zap"
)

var (
	newProduction  = zap.NewProduction
	newDevelopment = zap.NewDevelopment
)

// New 建立 zap logger；debug 模式使用可讀的開發格式，否則輸出 JSON
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return newDevelopment()
	}
	return newProduction()
}
