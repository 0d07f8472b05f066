package admin

import (
	handlershared "github.com/spirecart/internal/http/handlers/shared"
	"github.com/spirecart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListUserLoginLogs 查看用户登录记录
func (h *Handler) ListUserLoginLogs(c *gin.Context) {
	userID, ok := handlershared.ParseUintParam(c, "user_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	logs, total, err := h.UserLoginLogService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
