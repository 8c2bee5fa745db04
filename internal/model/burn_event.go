package model

import (
	"time"
)

// BurnEvent 燃烧事件记录
//
// TxRef 是外部结算方提供的全局唯一交易引用，作为幂等键：
// 同一引用至多对应一条记录，重复提交在唯一索引上被拒绝。
// 记录创建后不可变更。
type BurnEvent struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TxRef          string    `json:"tx_ref" gorm:"uniqueIndex;not null"`
	Wallet         string    `json:"wallet" gorm:"index;not null"`
	GrossAmount    *BigInt   `json:"gross_amount" gorm:"not null"`    // 燃烧总额
	BurnedAmount   *BigInt   `json:"burned_amount" gorm:"not null"`   // 销毁部分
	PoolAmount     *BigInt   `json:"pool_amount" gorm:"not null"`     // 进入再铸池部分
	CreditsGranted *BigInt   `json:"credits_granted" gorm:"not null"` // 授予的使用积分
	BurnedAt       time.Time `json:"burned_at" gorm:"index;not null"` // 用于周期窗口归属
}

// TableName 自定义表名
func (BurnEvent) TableName() string {
	return "burn_event"
}
