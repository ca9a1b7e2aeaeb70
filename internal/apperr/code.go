package apperr

// 稳定的机器可读错误码，是 API 契约的一部分，HTTP 状态码随响应一并返回
const (
	// 认证（401）
	CodeNoToken          = "NO_TOKEN"
	CodeBadToken         = "BAD_TOKEN"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeAccountSuspended = "ACCOUNT_SUSPENDED"
	CodeBadCredentials   = "BAD_CREDENTIALS"

	// 授权（403）
	CodeForbidden           = "FORBIDDEN"
	CodeImpersonatedSession = "IMPERSONATED_SESSION"
	CodeAdminUnavailable    = "ADMIN_UNAVAILABLE"

	// 输入校验（400）
	CodeBadRequest       = "BAD_REQUEST"
	CodeBadEmail         = "BAD_EMAIL"
	CodeBadPassword      = "BAD_PASSWORD"
	CodeMissingFields    = "MISSING_FIELDS"
	CodeInvalidHandle    = "INVALID_HANDLE"
	CodeHandleReserved   = "HANDLE_RESERVED"
	CodeBadSlug          = "BAD_SLUG"
	CodeMissingName      = "MISSING_NAME"
	CodeCardLimitReached = "CARD_LIMIT_EXCEEDED"
	CodeBadRole          = "BAD_ROLE"
	CodeNoFields         = "NO_FIELDS"
	CodeInvalidLimit     = "INVALID_LIMIT"
	CodeSelfModify       = "SELF_MODIFY"
	CodeSelfDelete       = "SELF_DELETE"
	CodeSelfImpersonate  = "SELF_IMPERSONATE"
	CodeNotImpersonating = "NOT_IMPERSONATING"

	// 冲突（409）
	CodeEmailTaken    = "EMAIL_TAKEN"
	CodeProfileExists = "PROFILE_EXISTS"
	CodeHandleTaken   = "HANDLE_TAKEN"
	CodeSlugTaken     = "SLUG_TAKEN"

	// 其他
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMITED"
	CodeNoAPIKey    = "NO_API_KEY"
	CodeServerError = "SERVER_ERROR"
)
