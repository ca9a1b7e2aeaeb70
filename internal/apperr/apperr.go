package apperr

import "net/http"

// Error 业务错误：HTTP 状态 + 稳定错误码 + 对外文案。
// 在 service 层构造，handler 边界统一映射成响应，不允许裸 500 往外漏。
type Error struct {
	Status int
	Code   string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, msg string) *Error {
	return &Error{Status: status, Code: code, Msg: msg}
}

func BadRequest(code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Msg: msg}
}

func Unauthorized(code, msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Msg: msg}
}

func Forbidden(code, msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Msg: msg}
}

func Conflict(code, msg string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Msg: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeServerError, Msg: msg, Err: err}
}
