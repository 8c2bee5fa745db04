package model

import (
	"time"
)

// RewardLine 单个创作者在单个周期内的奖励行
//
// ViewsSnapshot 与 MultiplierBps 是分配时刻的快照，之后的声誉变化
// 不会追溯影响已结算周期。Claimed 单调：仅允许 false→true。
type RewardLine struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EpochId       int64      `json:"epoch_id" gorm:"index;not null"`
	EpochNumber   int64      `json:"epoch_number" gorm:"not null"`
	CreatorId     int64      `json:"creator_id" gorm:"index:idx_reward_line_claim,priority:1;not null"`
	ViewsSnapshot int64      `json:"views_snapshot" gorm:"not null"`
	MultiplierBps int64      `json:"multiplier_bps" gorm:"not null"`
	BaseReward    *BigInt    `json:"base_reward" gorm:"not null"`  // 纯观看占比份额（对照用）
	FinalReward   *BigInt    `json:"final_reward" gorm:"not null"` // 加权占比份额（实际应发）
	Claimed       bool       `json:"claimed" gorm:"default:false;index:idx_reward_line_claim,priority:2"`
	ClaimedAt     *time.Time `json:"claimed_at"`
}

// TableName 自定义表名
func (RewardLine) TableName() string {
	return "reward_line"
}
