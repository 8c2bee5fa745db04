package model

import (
	"time"
)

// ReputationScore 创作者声誉评分快照
//
// 每个创作者仅保留一条当前记录，重算时整体覆盖，不保留历史。
// Accessibility 与 NoBounce 目前是配置基线占位值，非真实信号。
type ReputationScore struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CreatorId      int64   `json:"creator_id" gorm:"uniqueIndex;not null"`
	Freshness      float64 `json:"freshness"`       // 内容新鲜度 [0,100]
	CompletionRate float64 `json:"completion_rate"` // 平均完播率 [0,100]
	UserRating     float64 `json:"user_rating"`     // 用户评分 [0,100]
	Accessibility  float64 `json:"accessibility"`   // 占位基线
	NoBounce       float64 `json:"no_bounce"`       // 占位基线
	Overall        float64 `json:"overall"`         // 加权总分 [0,100]
	Tier           string  `json:"tier" gorm:"not null"`
	MultiplierBps  int64   `json:"multiplier_bps" gorm:"not null"` // 奖励倍率（基点，10000 = 1.0x）
}

// CreatorTier 创作者等级
type CreatorTier string

const (
	TierBronze   CreatorTier = "bronze"   // [0,40)    0.5x
	TierSilver   CreatorTier = "silver"   // [40,60)   1.0x
	TierGold     CreatorTier = "gold"     // [60,80)   1.5x
	TierPlatinum CreatorTier = "platinum" // [80,95)   2.0x
	TierDiamond  CreatorTier = "diamond"  // [95,100]  2.5x
)

// DefaultMultiplierBps 无评分记录时使用的默认倍率（1.0x）
const DefaultMultiplierBps int64 = 10000

// TableName 自定义表名
func (ReputationScore) TableName() string {
	return "reputation_score"
}
