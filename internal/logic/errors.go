package logic

import "errors"

// 跨层使用的业务结果，handler 层据此映射为 API 结果码。
var (
	// ErrDuplicateBurn 交易引用已存在，调用方应视为无操作成功
	ErrDuplicateBurn = errors.New("燃烧交易已存在")
	// ErrNoContent 创作者没有已发布内容，跳过评分
	ErrNoContent = errors.New("创作者暂无已发布内容")
	// ErrNoPendingRewards 没有待领取的奖励行
	ErrNoPendingRewards = errors.New("暂无待领取奖励")
	// ErrEpochOverlap 周期窗口与已有周期重叠
	ErrEpochOverlap = errors.New("周期窗口与已有周期重叠")
	// ErrCreatorNotFound 创作者不存在
	ErrCreatorNotFound = errors.New("创作者不存在")
	// ErrEpochNotFound 周期不存在
	ErrEpochNotFound = errors.New("周期不存在")
)
