package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfind/res/internal/logic"
)

// EpochHandler 周期分配处理器
type EpochHandler struct {
	epochLogic  *logic.EpochLogic
	rewardLogic *logic.RewardLogic
}

// NewEpochHandler 创建周期分配处理器
func NewEpochHandler(epochLogic *logic.EpochLogic, rewardLogic *logic.RewardLogic) *EpochHandler {
	return &EpochHandler{
		epochLogic:  epochLogic,
		rewardLogic: rewardLogic,
	}
}

// RunEpoch 手动触发一次周期分配（管理/调度端）
func (h *EpochHandler) RunEpoch(c *gin.Context) {
	var req RunEpochRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}

	epoch, err := h.epochLogic.RunEpoch(req.WeekStart, req.WeekEnd)
	if err != nil {
		if errors.Is(err, logic.ErrEpochOverlap) {
			ErrorWithCode(c, http.StatusConflict, CodeEpochOverlap, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "周期分配完成", ToEpochResponse(epoch))
}

// GetEpochs 获取周期历史
func (h *EpochHandler) GetEpochs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	epochs, total, err := h.epochLogic.GetEpochs(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取周期历史成功", GetEpochsResponse{
		Epochs:     ToEpochResponseList(epochs),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetEpoch 按周期号获取周期详情
func (h *EpochHandler) GetEpoch(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的周期号")
		return
	}

	epoch, err := h.epochLogic.GetEpochByNumber(number)
	if err != nil {
		if errors.Is(err, logic.ErrEpochNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取周期详情成功", ToEpochResponse(epoch))
}

// GetEpochRewards 获取某周期的全部奖励行
func (h *EpochHandler) GetEpochRewards(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的周期号")
		return
	}

	lines, err := h.rewardLogic.GetEpochRewardLines(number)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取周期奖励行成功", ToRewardLineResponseList(lines))
}
