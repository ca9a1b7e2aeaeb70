package validate

// 系统路径同名 handle 不允许被认领。按字母序维护。
var reservedHandles = map[string]struct{}{
	"about":     {},
	"admin":     {},
	"api":       {},
	"app":       {},
	"assets":    {},
	"auth":      {},
	"blog":      {},
	"dashboard": {},
	"favicon":   {},
	"help":      {},
	"images":    {},
	"login":     {},
	"logout":    {},
	"mail":      {},
	"me":        {},
	"p":         {},
	"privacy":   {},
	"public":    {},
	"register":  {},
	"settings":  {},
	"signup":    {},
	"static":    {},
	"support":   {},
	"terms":     {},
	"www":       {},
}

func IsReserved(handle string) bool {
	_, ok := reservedHandles[handle]
	return ok
}
