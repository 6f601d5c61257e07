package zlog

import (
	"os"
	"path/filepath"
	"sync"

	"Nexus/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// getLogger 懒加载全局 logger，输出到控制台 + 滚动日志文件
func getLogger() *zap.Logger {
	once.Do(func() {
		logPath := config.GetConfig().LogConfig.LogPath
		if logPath == "" {
			logPath = "logs"
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder := zapcore.NewConsoleEncoder(encoderConfig)

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(logPath, "nexus.log"),
			MaxSize:    100, // MB
			MaxBackups: 7,
			MaxAge:     30, // 天
			Compress:   true,
		})

		core := zapcore.NewTee(
			zapcore.NewCore(encoder, fileWriter, zapcore.DebugLevel),
			zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	})
	return logger
}

func Debug(msg string) {
	getLogger().Debug(msg)
}

func Info(msg string) {
	getLogger().Info(msg)
}

func Warn(msg string) {
	getLogger().Warn(msg)
}

func Error(msg string) {
	getLogger().Error(msg)
}

// Fatal 记录日志后退出进程
func Fatal(msg string) {
	getLogger().Fatal(msg)
}
