package handler

import (
	"github.com/gin-gonic/gin"
)

// 业务结果码，供调用方区分正常的空结果与真正的失败
const (
	CodeDuplicate        = "DUPLICATE"
	CodeNoContent        = "NO_CONTENT"
	CodeNoPendingRewards = "NO_PENDING_REWARDS"
	CodeEpochOverlap     = "EPOCH_OVERLAP"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithCode 带结果码的成功响应（如重复提交按无操作成功返回）
func SuccessWithCode(c *gin.Context, statusCode int, code, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithCode 带结果码的错误响应
func ErrorWithCode(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
