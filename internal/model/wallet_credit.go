package model

import (
	"time"
)

// WalletCredit 钱包积分账户
type WalletCredit struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wallet      string  `json:"wallet" gorm:"uniqueIndex;not null"`
	Credits     *BigInt `json:"credits" gorm:"not null"`      // 累计可用积分
	TotalBurned *BigInt `json:"total_burned" gorm:"not null"` // 累计燃烧总额
}

// TableName 自定义表名
func (WalletCredit) TableName() string {
	return "wallet_credit"
}
