package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfind/res/internal/logic"
)

// CreatorHandler 创作者处理器
type CreatorHandler struct {
	creatorLogic    *logic.CreatorLogic
	reputationLogic *logic.ReputationLogic
}

// NewCreatorHandler 创建创作者处理器
func NewCreatorHandler(creatorLogic *logic.CreatorLogic, reputationLogic *logic.ReputationLogic) *CreatorHandler {
	return &CreatorHandler{
		creatorLogic:    creatorLogic,
		reputationLogic: reputationLogic,
	}
}

// RegisterCreator 注册创作者
func (h *CreatorHandler) RegisterCreator(c *gin.Context) {
	var req RegisterCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}

	creator, err := h.creatorLogic.Register(req.Wallet, req.PayoutAddress)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册创作者成功", ToCreatorResponse(creator))
}

// GetCreator 获取创作者详情
func (h *CreatorHandler) GetCreator(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	creator, err := h.creatorLogic.GetCreator(id)
	if err != nil {
		if errors.Is(err, logic.ErrCreatorNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取创作者成功", ToCreatorResponse(creator))
}

// RecalculateReputation 重算创作者声誉评分
//
// 没有已发布内容时返回 200 + NO_CONTENT：显式空操作，不是错误。
func (h *CreatorHandler) RecalculateReputation(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	score, err := h.reputationLogic.Recalculate(id)
	if err != nil {
		if errors.Is(err, logic.ErrNoContent) {
			SuccessWithCode(c, http.StatusOK, CodeNoContent, "创作者暂无已发布内容，跳过评分", nil)
			return
		}
		if errors.Is(err, logic.ErrCreatorNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "重算声誉评分成功", ToReputationResponse(score))
}

// GetReputation 获取创作者当前声誉评分
func (h *CreatorHandler) GetReputation(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	score, err := h.reputationLogic.GetScore(id)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取声誉评分成功", ToReputationResponse(score))
}

func parseCreatorID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
