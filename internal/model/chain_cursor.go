package model

import (
	"time"
)

// ChainCursor 链上监听进度游标
//
// 记录燃烧事件监听已处理到的区块号，避免重启后从起始区块重扫。
// 即使重扫也无副作用：RecordBurn 按交易引用幂等去重。
type ChainCursor struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	LastBlock int64  `json:"last_block" gorm:"default:0"`
}

// TableName 自定义表名
func (ChainCursor) TableName() string {
	return "chain_cursor"
}
