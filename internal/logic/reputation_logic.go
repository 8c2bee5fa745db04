package logic

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/model"
)

// 总分加权系数
const (
	weightFreshness      = 0.30
	weightCompletionRate = 0.25
	weightUserRating     = 0.25
	weightAccessibility  = 0.10
	weightNoBounce       = 0.10
)

// freshnessWindowDays 新鲜度统计的回看天数
const freshnessWindowDays = 30

// ReputationLogic 声誉评分业务逻辑
type ReputationLogic struct {
	db                    *gorm.DB
	accessibilityBaseline float64
	noBounceBaseline      float64
	nowFn                 func() time.Time
}

// NewReputationLogic 创建声誉评分业务逻辑
func NewReputationLogic(db *gorm.DB, cfg config.ReputationConfig) *ReputationLogic {
	return &ReputationLogic{
		db:                    db,
		accessibilityBaseline: cfg.AccessibilityBaseline,
		noBounceBaseline:      cfg.NoBounceBaseline,
		nowFn:                 time.Now,
	}
}

// SetNowFunc 覆盖时间源，便于确定性测试
func (r *ReputationLogic) SetNowFunc(now func() time.Time) {
	if now == nil {
		r.nowFn = time.Now
		return
	}
	r.nowFn = now
}

// TierForOverall 按总分映射等级与倍率
//
// 区间为左闭右开，最高档闭区间到100。对 [0,100] 全域完备。
func TierForOverall(overall float64) (model.CreatorTier, int64) {
	switch {
	case overall >= 95:
		return model.TierDiamond, 25000
	case overall >= 80:
		return model.TierPlatinum, 20000
	case overall >= 60:
		return model.TierGold, 15000
	case overall >= 40:
		return model.TierSilver, 10000
	default:
		return model.TierBronze, 5000
	}
}

// Recalculate 重算创作者的声誉评分并覆盖当前快照
//
// 无已发布视频时返回 ErrNoContent，不写入任何记录（显式空操作而非除零）。
// 指标读取失败时保留旧评分不做部分覆盖。
func (r *ReputationLogic) Recalculate(creatorID int64) (*model.ReputationScore, error) {
	var creator model.Creator
	if err := r.db.First(&creator, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("查询创作者失败: %w", err)
	}

	var videos []model.Video
	if err := r.db.Where("creator_id = ? AND status = ?", creatorID, model.VideoStatusPublished).
		Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("获取视频指标失败: %w", err)
	}
	if len(videos) == 0 {
		return nil, ErrNoContent
	}

	cutoff := r.nowFn().AddDate(0, 0, -freshnessWindowDays)
	recentCount := 0
	var completionSum, ratingSum float64
	for i := range videos {
		if videos[i].ContentUpdatedAt.After(cutoff) {
			recentCount++
		}
		completionSum += videos[i].CompletionRate
		ratingSum += videos[i].AvgRating
	}

	total := float64(len(videos))
	freshness := math.Min(100, 100*float64(recentCount)/total+20)
	completionRate := completionSum / total
	userRating := ratingSum / total * 20 // 1-5星映射到0-100

	// 占位基线：无障碍与跳出率分析组件上线前的固定默认值
	accessibility := r.accessibilityBaseline
	noBounce := r.noBounceBaseline

	overall := weightFreshness*freshness +
		weightCompletionRate*completionRate +
		weightUserRating*userRating +
		weightAccessibility*accessibility +
		weightNoBounce*noBounce
	overall = clamp(overall, 0, 100)

	tier, bps := TierForOverall(overall)

	score := &model.ReputationScore{
		CreatorId:      creatorID,
		Freshness:      freshness,
		CompletionRate: completionRate,
		UserRating:     userRating,
		Accessibility:  accessibility,
		NoBounce:       noBounce,
		Overall:        overall,
		Tier:           string(tier),
		MultiplierBps:  bps,
	}

	// 每个创作者只保留一条当前记录，重算即覆盖
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"freshness", "completion_rate", "user_rating",
			"accessibility", "no_bounce", "overall", "tier", "multiplier_bps", "updated_at",
		}),
	}).Create(score).Error; err != nil {
		return nil, fmt.Errorf("保存声誉评分失败: %w", err)
	}

	return score, nil
}

// GetScore 获取创作者当前声誉评分
func (r *ReputationLogic) GetScore(creatorID int64) (*model.ReputationScore, error) {
	var score model.ReputationScore
	if err := r.db.Where("creator_id = ?", creatorID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("声誉评分不存在")
		}
		return nil, fmt.Errorf("查询声誉评分失败: %w", err)
	}
	return &score, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
