package server

import (
	"fmt"
	"net/http"
	"time"

	"cardlink/internal/core/config"
)

func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

// Build 统一的 http.Server 参数，读写超时兜底防慢连接占坑
func Build(cfg config.HTTP, h http.Handler) *http.Server {
	read := cfg.ReadTimeoutSec
	if read <= 0 {
		read = 15
	}
	write := cfg.WriteTimeoutSec
	if write <= 0 {
		write = 30
	}
	idle := cfg.IdleTimeoutSec
	if idle <= 0 {
		idle = 60
	}
	return &http.Server{
		Addr:         Addr(cfg.Host, cfg.Port),
		Handler:      h,
		ReadTimeout:  time.Duration(read) * time.Second,
		WriteTimeout: time.Duration(write) * time.Second,
		IdleTimeout:  time.Duration(idle) * time.Second,
	}
}
