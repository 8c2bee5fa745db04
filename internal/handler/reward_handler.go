package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfind/res/internal/logic"
)

// RewardHandler 奖励账本处理器
type RewardHandler struct {
	rewardLogic *logic.RewardLogic
}

// NewRewardHandler 创建奖励账本处理器
func NewRewardHandler(rewardLogic *logic.RewardLogic) *RewardHandler {
	return &RewardHandler{
		rewardLogic: rewardLogic,
	}
}

// Claim 领取结算全部待领取奖励
//
// 没有待领取行时返回 200 + NO_PENDING_REWARDS：正常的"无事可做"结果。
// 实际链上转账由外部结算步骤消费返回金额完成。
func (h *RewardHandler) Claim(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	result, err := h.rewardLogic.Claim(id)
	if err != nil {
		if errors.Is(err, logic.ErrNoPendingRewards) {
			SuccessWithCode(c, http.StatusOK, CodeNoPendingRewards, "暂无待领取奖励", nil)
			return
		}
		if errors.Is(err, logic.ErrCreatorNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "领取奖励成功", ToClaimResponse(result))
}

// GetCreatorRewards 获取创作者奖励行
func (h *RewardHandler) GetCreatorRewards(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	lines, total, err := h.rewardLogic.GetCreatorRewardLines(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取奖励行成功", GetCreatorRewardsResponse{
		Records:    ToRewardLineResponseList(lines),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetRewardSummary 获取创作者奖励汇总
func (h *RewardHandler) GetRewardSummary(c *gin.Context) {
	id, err := parseCreatorID(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创作者ID")
		return
	}

	summary, err := h.rewardLogic.GetRewardSummary(id)
	if err != nil {
		if errors.Is(err, logic.ErrCreatorNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取奖励汇总成功", ToRewardSummaryResponse(summary))
}
