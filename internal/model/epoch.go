package model

import (
	"time"
)

// Epoch 周分配周期
//
// 周期号严格递增且不复用；completed 后除奖励行的领取状态外不可变更。
// TotalPooled 记录上限裁剪前的池总额，超出上限的部分留存金库，
// 可由 total_pooled - total_reminted 审计。
type Epoch struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EpochNumber    int64     `json:"epoch_number" gorm:"uniqueIndex;not null"`
	WeekStart      time.Time `json:"week_start" gorm:"not null"`
	WeekEnd        time.Time `json:"week_end" gorm:"not null"`
	TotalBurned    *BigInt   `json:"total_burned" gorm:"not null"`   // 窗口内销毁总额
	TotalPooled    *BigInt   `json:"total_pooled" gorm:"not null"`   // 窗口内入池总额（上限前）
	TotalReminted  *BigInt   `json:"total_reminted" gorm:"not null"` // 实际分配总额（上限后）
	RecipientCount int       `json:"recipient_count" gorm:"default:0"`
	Status         string    `json:"status" gorm:"default:'pending'"`
}

// EpochStatus 周期状态
type EpochStatus string

const (
	EpochStatusPending    EpochStatus = "pending"    // 待处理
	EpochStatusProcessing EpochStatus = "processing" // 分配中
	EpochStatusCompleted  EpochStatus = "completed"  // 已完成
	EpochStatusFailed     EpochStatus = "failed"     // 失败（可整体重试）
)

// TableName 自定义表名
func (Epoch) TableName() string {
	return "epoch"
}
