package handler

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayfind/res/internal/logic"
)

// BurnHandler 燃烧账本处理器
type BurnHandler struct {
	burnLogic *logic.BurnLogic
}

// NewBurnHandler 创建燃烧账本处理器
func NewBurnHandler(burnLogic *logic.BurnLogic) *BurnHandler {
	return &BurnHandler{
		burnLogic: burnLogic,
	}
}

// RecordBurn 记录燃烧事件
//
// 重复的交易引用返回 200 + DUPLICATE：上游至少一次投递的重试
// 应视为无操作成功，而非需要上报的错误。
func (h *BurnHandler) RecordBurn(c *gin.Context) {
	var req RecordBurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}

	gross, ok := new(big.Int).SetString(req.GrossAmount, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的燃烧金额")
		return
	}

	burnedAt := time.Time{}
	if req.BurnedAt != nil {
		burnedAt = *req.BurnedAt
	}

	event, err := h.burnLogic.RecordBurn(req.TxRef, req.Wallet, gross, burnedAt)
	if err != nil {
		if errors.Is(err, logic.ErrDuplicateBurn) {
			SuccessWithCode(c, http.StatusOK, CodeDuplicate, "燃烧交易已存在，忽略重复提交", nil)
			return
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "记录燃烧事件成功", ToBurnEventResponse(event))
}

// GetBurnStats 获取全局燃烧统计信息
func (h *BurnHandler) GetBurnStats(c *gin.Context) {
	stats, err := h.burnLogic.GetBurnStats()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取燃烧统计成功", BurnStatsResponse{
		EventCount:   stats.EventCount,
		TotalGross:   stats.TotalGross.String(),
		TotalBurned:  stats.TotalBurned.String(),
		TotalPooled:  stats.TotalPooled.String(),
		TotalCredits: stats.TotalCredits.String(),
	})
}

// GetWalletBurns 获取钱包燃烧记录
func (h *BurnHandler) GetWalletBurns(c *gin.Context) {
	wallet := c.Param("wallet")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.burnLogic.GetWalletBurns(wallet, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取燃烧记录成功", GetWalletBurnsResponse{
		Records:    ToBurnEventResponseList(records),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetWalletCredit 获取钱包积分账户
func (h *BurnHandler) GetWalletCredit(c *gin.Context) {
	wallet := c.Param("wallet")

	credit, err := h.burnLogic.GetWalletCredit(wallet)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取钱包积分成功", WalletCreditResponse{
		Wallet:      credit.Wallet,
		Credits:     credit.Credits.String(),
		TotalBurned: credit.TotalBurned.String(),
	})
}
