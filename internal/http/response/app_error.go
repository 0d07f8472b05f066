package response

// AppError 统一错误包装
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HTTPStatus 业务码对应的 HTTP 状态
// 业务错误统一返回 200，仅鉴权与限流类错误透出真实状态码
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthorized, CodeForbidden, CodeTooManyRequests:
		return e.Code
	default:
		return 200
	}
}
