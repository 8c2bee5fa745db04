package logic

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/wayfind/res/internal/model"
)

// RewardLogic 奖励账本与领取结算业务逻辑
type RewardLogic struct {
	db *gorm.DB
}

// NewRewardLogic 创建奖励账本业务逻辑
func NewRewardLogic(db *gorm.DB) *RewardLogic {
	return &RewardLogic{db: db}
}

// ClaimResult 一次领取的结算结果
type ClaimResult struct {
	CreatorId     int64    `json:"creator_id"`
	ClaimedAmount *big.Int `json:"claimed_amount"`
	LineCount     int      `json:"line_count"`
}

// Claim 结算创作者全部待领取奖励行
//
// 读取与标记在同一事务内完成；标记带 claimed = false 守卫，
// 并发领取竞争时只有一方全量成功，另一方整体回滚并得到
// ErrNoPendingRewards。已领取行不可逆转。
// 实际的链上转账由外部结算步骤消费返回金额完成。
func (r *RewardLogic) Claim(creatorID int64) (*ClaimResult, error) {
	var result *ClaimResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var creator model.Creator
		if err := tx.First(&creator, creatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreatorNotFound
			}
			return fmt.Errorf("查询创作者失败: %w", err)
		}

		var lines []model.RewardLine
		if err := tx.Where("creator_id = ? AND claimed = ?", creatorID, false).
			Find(&lines).Error; err != nil {
			return fmt.Errorf("获取待领取奖励失败: %w", err)
		}
		if len(lines) == 0 {
			return ErrNoPendingRewards
		}

		total := new(big.Int)
		ids := make([]int64, 0, len(lines))
		for i := range lines {
			total.Add(total, lines[i].FinalReward.Big())
			ids = append(ids, lines[i].Id)
		}

		now := time.Now().UTC()
		res := tx.Model(&model.RewardLine{}).
			Where("id IN ? AND claimed = ?", ids, false).
			Updates(map[string]interface{}{"claimed": true, "claimed_at": now})
		if res.Error != nil {
			return fmt.Errorf("标记奖励行失败: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			// 并发领取已拿走部分行，放弃本次结算
			return ErrNoPendingRewards
		}

		earned := creator.TotalEarned.Big()
		earned.Add(earned, total)
		if err := tx.Model(&creator).
			Update("total_earned", model.NewBigIntFromBig(earned)).Error; err != nil {
			return fmt.Errorf("更新累计收益失败: %w", err)
		}

		result = &ClaimResult{
			CreatorId:     creatorID,
			ClaimedAmount: total,
			LineCount:     len(lines),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RewardSummary 创作者奖励汇总
type RewardSummary struct {
	CreatorId     int64    `json:"creator_id"`
	PendingAmount *big.Int `json:"pending_amount"`
	PendingLines  int64    `json:"pending_lines"`
	ClaimedAmount *big.Int `json:"claimed_amount"`
	ClaimedLines  int64    `json:"claimed_lines"`
	TotalEarned   *big.Int `json:"total_earned"`
}

// GetRewardSummary 获取创作者的待领取/已领取汇总
func (r *RewardLogic) GetRewardSummary(creatorID int64) (*RewardSummary, error) {
	var creator model.Creator
	if err := r.db.First(&creator, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("查询创作者失败: %w", err)
	}

	var lines []model.RewardLine
	if err := r.db.Where("creator_id = ?", creatorID).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("获取奖励行失败: %w", err)
	}

	summary := &RewardSummary{
		CreatorId:     creatorID,
		PendingAmount: new(big.Int),
		ClaimedAmount: new(big.Int),
		TotalEarned:   creator.TotalEarned.Big(),
	}
	for i := range lines {
		if lines[i].Claimed {
			summary.ClaimedAmount.Add(summary.ClaimedAmount, lines[i].FinalReward.Big())
			summary.ClaimedLines++
		} else {
			summary.PendingAmount.Add(summary.PendingAmount, lines[i].FinalReward.Big())
			summary.PendingLines++
		}
	}
	return summary, nil
}

// GetCreatorRewardLines 获取创作者奖励行（分页，按周期号倒序）
func (r *RewardLogic) GetCreatorRewardLines(creatorID int64, page, pageSize int) ([]model.RewardLine, int64, error) {
	var lines []model.RewardLine
	var total int64

	if err := r.db.Model(&model.RewardLine{}).
		Where("creator_id = ?", creatorID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取奖励行总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.Where("creator_id = ?", creatorID).
		Order("epoch_number DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&lines).Error; err != nil {
		return nil, 0, fmt.Errorf("获取奖励行失败: %w", err)
	}

	return lines, total, nil
}

// GetEpochRewardLines 获取某个周期的全部奖励行
func (r *RewardLogic) GetEpochRewardLines(epochNumber int64) ([]model.RewardLine, error) {
	var lines []model.RewardLine
	if err := r.db.Where("epoch_number = ?", epochNumber).
		Order("creator_id ASC").
		Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("获取周期奖励行失败: %w", err)
	}
	return lines, nil
}
