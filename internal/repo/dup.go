package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cardlink/internal/domain"
)

// translateDup 把各驱动的唯一约束错误翻译成 domain.ErrDuplicateKey。
// 不只依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异漏翻。
func translateDup(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}
	return err
}
