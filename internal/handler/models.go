package handler

import (
	"time"

	"github.com/wayfind/res/internal/logic"
	"github.com/wayfind/res/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 燃烧相关请求/响应模型

// RecordBurnRequest 记录燃烧请求
type RecordBurnRequest struct {
	TxRef       string     `json:"txRef" binding:"required"`
	Wallet      string     `json:"wallet" binding:"required"`
	GrossAmount string     `json:"grossAmount" binding:"required"` // 十进制字符串，最小单位
	BurnedAt    *time.Time `json:"burnedAt"`
}

// BurnEventResponse 燃烧事件响应模型
type BurnEventResponse struct {
	ID             int64     `json:"id"`
	TxRef          string    `json:"txRef"`
	Wallet         string    `json:"wallet"`
	GrossAmount    string    `json:"grossAmount"`
	BurnedAmount   string    `json:"burnedAmount"`
	PoolAmount     string    `json:"poolAmount"`
	CreditsGranted string    `json:"creditsGranted"`
	BurnedAt       time.Time `json:"burnedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToBurnEventResponse 转换燃烧事件响应
func ToBurnEventResponse(e *model.BurnEvent) BurnEventResponse {
	return BurnEventResponse{
		ID:             e.Id,
		TxRef:          e.TxRef,
		Wallet:         e.Wallet,
		GrossAmount:    e.GrossAmount.String(),
		BurnedAmount:   e.BurnedAmount.String(),
		PoolAmount:     e.PoolAmount.String(),
		CreditsGranted: e.CreditsGranted.String(),
		BurnedAt:       e.BurnedAt,
		CreatedAt:      e.CreatedAt,
	}
}

// ToBurnEventResponseList 转换燃烧事件响应列表
func ToBurnEventResponseList(events []model.BurnEvent) []BurnEventResponse {
	out := make([]BurnEventResponse, 0, len(events))
	for i := range events {
		out = append(out, ToBurnEventResponse(&events[i]))
	}
	return out
}

// WalletCreditResponse 钱包积分响应模型
type WalletCreditResponse struct {
	Wallet      string `json:"wallet"`
	Credits     string `json:"credits"`
	TotalBurned string `json:"totalBurned"`
}

// BurnStatsResponse 燃烧统计响应
type BurnStatsResponse struct {
	EventCount   int64  `json:"eventCount"`
	TotalGross   string `json:"totalGross"`
	TotalBurned  string `json:"totalBurned"`
	TotalPooled  string `json:"totalPooled"`
	TotalCredits string `json:"totalCredits"`
}

// GetWalletBurnsResponse 钱包燃烧记录响应
type GetWalletBurnsResponse struct {
	Records    []BurnEventResponse `json:"records"`
	Pagination Pagination          `json:"pagination"`
}

// 创作者相关请求/响应模型

// RegisterCreatorRequest 注册创作者请求
type RegisterCreatorRequest struct {
	Wallet        string `json:"wallet" binding:"required"`
	PayoutAddress string `json:"payoutAddress"`
}

// CreatorResponse 创作者响应模型
type CreatorResponse struct {
	ID            int64     `json:"id"`
	Wallet        string    `json:"wallet"`
	PayoutAddress string    `json:"payoutAddress"`
	WeeklyViews   int64     `json:"weeklyViews"`
	TotalViews    int64     `json:"totalViews"`
	TotalEarned   string    `json:"totalEarned"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToCreatorResponse 转换创作者响应
func ToCreatorResponse(c *model.Creator) CreatorResponse {
	return CreatorResponse{
		ID:            c.Id,
		Wallet:        c.Wallet,
		PayoutAddress: c.PayoutAddress,
		WeeklyViews:   c.WeeklyViews,
		TotalViews:    c.TotalViews,
		TotalEarned:   c.TotalEarned.String(),
		CreatedAt:     c.CreatedAt,
	}
}

// 声誉相关响应模型

// ReputationResponse 声誉评分响应模型
type ReputationResponse struct {
	CreatorID      int64     `json:"creatorId"`
	Freshness      float64   `json:"freshness"`
	CompletionRate float64   `json:"completionRate"`
	UserRating     float64   `json:"userRating"`
	Accessibility  float64   `json:"accessibility"`
	NoBounce       float64   `json:"noBounce"`
	Overall        float64   `json:"overall"`
	Tier           string    `json:"tier"`
	Multiplier     float64   `json:"multiplier"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToReputationResponse 转换声誉评分响应
func ToReputationResponse(s *model.ReputationScore) ReputationResponse {
	return ReputationResponse{
		CreatorID:      s.CreatorId,
		Freshness:      s.Freshness,
		CompletionRate: s.CompletionRate,
		UserRating:     s.UserRating,
		Accessibility:  s.Accessibility,
		NoBounce:       s.NoBounce,
		Overall:        s.Overall,
		Tier:           s.Tier,
		Multiplier:     float64(s.MultiplierBps) / 10000,
		UpdatedAt:      s.UpdatedAt,
	}
}

// 周期相关请求/响应模型

// RunEpochRequest 运行周期请求
type RunEpochRequest struct {
	WeekStart time.Time `json:"weekStart" binding:"required"`
	WeekEnd   time.Time `json:"weekEnd" binding:"required"`
}

// EpochResponse 周期响应模型
type EpochResponse struct {
	ID             int64     `json:"id"`
	EpochNumber    int64     `json:"epochNumber"`
	WeekStart      time.Time `json:"weekStart"`
	WeekEnd        time.Time `json:"weekEnd"`
	TotalBurned    string    `json:"totalBurned"`
	TotalPooled    string    `json:"totalPooled"`
	TotalReminted  string    `json:"totalReminted"`
	RecipientCount int       `json:"recipientCount"`
	Status         string    `json:"status"`
}

// ToEpochResponse 转换周期响应
func ToEpochResponse(e *model.Epoch) EpochResponse {
	return EpochResponse{
		ID:             e.Id,
		EpochNumber:    e.EpochNumber,
		WeekStart:      e.WeekStart,
		WeekEnd:        e.WeekEnd,
		TotalBurned:    e.TotalBurned.String(),
		TotalPooled:    e.TotalPooled.String(),
		TotalReminted:  e.TotalReminted.String(),
		RecipientCount: e.RecipientCount,
		Status:         e.Status,
	}
}

// ToEpochResponseList 转换周期响应列表
func ToEpochResponseList(epochs []model.Epoch) []EpochResponse {
	out := make([]EpochResponse, 0, len(epochs))
	for i := range epochs {
		out = append(out, ToEpochResponse(&epochs[i]))
	}
	return out
}

// GetEpochsResponse 周期历史响应
type GetEpochsResponse struct {
	Epochs     []EpochResponse `json:"epochs"`
	Pagination Pagination      `json:"pagination"`
}

// 奖励相关响应模型

// RewardLineResponse 奖励行响应模型
type RewardLineResponse struct {
	ID            int64      `json:"id"`
	EpochNumber   int64      `json:"epochNumber"`
	CreatorID     int64      `json:"creatorId"`
	ViewsSnapshot int64      `json:"viewsSnapshot"`
	Multiplier    float64    `json:"multiplier"`
	BaseReward    string     `json:"baseReward"`
	FinalReward   string     `json:"finalReward"`
	Claimed       bool       `json:"claimed"`
	ClaimedAt     *time.Time `json:"claimedAt"`
}

// ToRewardLineResponse 转换奖励行响应
func ToRewardLineResponse(l *model.RewardLine) RewardLineResponse {
	return RewardLineResponse{
		ID:            l.Id,
		EpochNumber:   l.EpochNumber,
		CreatorID:     l.CreatorId,
		ViewsSnapshot: l.ViewsSnapshot,
		Multiplier:    float64(l.MultiplierBps) / 10000,
		BaseReward:    l.BaseReward.String(),
		FinalReward:   l.FinalReward.String(),
		Claimed:       l.Claimed,
		ClaimedAt:     l.ClaimedAt,
	}
}

// ToRewardLineResponseList 转换奖励行响应列表
func ToRewardLineResponseList(lines []model.RewardLine) []RewardLineResponse {
	out := make([]RewardLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, ToRewardLineResponse(&lines[i]))
	}
	return out
}

// GetCreatorRewardsResponse 创作者奖励行响应
type GetCreatorRewardsResponse struct {
	Records    []RewardLineResponse `json:"records"`
	Pagination Pagination           `json:"pagination"`
}

// ClaimResponse 领取结算响应
type ClaimResponse struct {
	CreatorID     int64  `json:"creatorId"`
	ClaimedAmount string `json:"claimedAmount"`
	LineCount     int    `json:"lineCount"`
}

// ToClaimResponse 转换领取结算响应
func ToClaimResponse(r *logic.ClaimResult) ClaimResponse {
	return ClaimResponse{
		CreatorID:     r.CreatorId,
		ClaimedAmount: r.ClaimedAmount.String(),
		LineCount:     r.LineCount,
	}
}

// RewardSummaryResponse 奖励汇总响应
type RewardSummaryResponse struct {
	CreatorID     int64  `json:"creatorId"`
	PendingAmount string `json:"pendingAmount"`
	PendingLines  int64  `json:"pendingLines"`
	ClaimedAmount string `json:"claimedAmount"`
	ClaimedLines  int64  `json:"claimedLines"`
	TotalEarned   string `json:"totalEarned"`
}

// ToRewardSummaryResponse 转换奖励汇总响应
func ToRewardSummaryResponse(s *logic.RewardSummary) RewardSummaryResponse {
	return RewardSummaryResponse{
		CreatorID:     s.CreatorId,
		PendingAmount: s.PendingAmount.String(),
		PendingLines:  s.PendingLines,
		ClaimedAmount: s.ClaimedAmount.String(),
		ClaimedLines:  s.ClaimedLines,
		TotalEarned:   s.TotalEarned.String(),
	}
}

func newPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
