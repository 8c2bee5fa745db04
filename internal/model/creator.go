package model

import (
	"time"
)

// Creator 创作者账户
//
// WeeklyViews 由外部视频服务组件递增，本引擎仅在周期分配时读取并清零。
type Creator struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wallet        string  `json:"wallet" gorm:"uniqueIndex;not null"`
	PayoutAddress string  `json:"payout_address" gorm:"not null"` // 收款地址
	WeeklyViews   int64   `json:"weekly_views" gorm:"default:0"`  // 本周观看次数
	TotalViews    int64   `json:"total_views" gorm:"default:0"`   // 累计观看次数
	TotalEarned   *BigInt `json:"total_earned" gorm:"not null"`   // 累计已领取收益
}

// TableName 自定义表名
func (Creator) TableName() string {
	return "creator"
}
