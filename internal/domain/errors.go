package domain

import "errors"

// ErrDuplicateKey 唯一约束冲突。并发抢占 handle/email 时由存储层裁决，
// 仓储实现负责把驱动差异翻译成这个错误。
var ErrDuplicateKey = errors.New("duplicate key")
