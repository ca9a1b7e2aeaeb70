package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string // debug / info / warn / error
	JSON  bool   // 生产输出 JSON，开发输出彩色控制台

	// 文件写入 + 切割，Filename 为空则只写 stdout
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func New(level string, json bool) (*zap.Logger, func()) {
	return Build(Options{Level: level, JSON: json})
}

func Build(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if opt.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.TimeKey = "ts"
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	sinks := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl),
	}
	if opt.Filename != "" {
		rotator := &lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    max(1, opt.MaxSizeMB),
			MaxBackups: opt.MaxBackups,
			MaxAge:     opt.MaxAgeDays,
			Compress:   opt.Compress,
		}
		sinks = append(sinks, zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl))
	}

	core := zapcore.NewTee(sinks...)
	// 高频重复日志采样，访问日志风暴不拖垮进程
	sampled := zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)

	opts := []zap.Option{zap.AddCaller()}
	if !opt.JSON {
		opts = append(opts, zap.Development())
	}
	l := zap.New(sampled, opts...)
	return l, func() { _ = l.Sync() }
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
