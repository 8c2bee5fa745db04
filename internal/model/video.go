package model

import (
	"time"
)

// Video 视频指标行
//
// 由上传/转码、会话统计和评分组件维护，本引擎只读。
// 声誉评分只统计 published 状态的视频。
type Video struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CreatorId        int64      `json:"creator_id" gorm:"index;not null"`
	Status           string     `json:"status" gorm:"default:'draft'"`
	PublishedAt      *time.Time `json:"published_at"`
	ContentUpdatedAt time.Time  `json:"content_updated_at"`          // 内容最近发布/更新时间
	CompletionRate   float64    `json:"completion_rate"`             // 平均完播率 [0,100]
	AvgRating        float64    `json:"avg_rating" gorm:"default:0"` // 平均星级 [1,5]
}

// VideoStatus 视频状态
type VideoStatus string

const (
	VideoStatusDraft     VideoStatus = "draft"     // 草稿
	VideoStatusPublished VideoStatus = "published" // 已发布
)

// TableName 自定义表名
func (Video) TableName() string {
	return "video"
}
