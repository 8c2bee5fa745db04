package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfind/res/internal/model"
)

func TestTierForOverallBoundaries(t *testing.T) {
	cases := []struct {
		overall float64
		tier    model.CreatorTier
		bps     int64
	}{
		{0, model.TierBronze, 5000},
		{39.999, model.TierBronze, 5000},
		{40, model.TierSilver, 10000}, // 边界归入高档
		{59.999, model.TierSilver, 10000},
		{60, model.TierGold, 15000},
		{79.999, model.TierGold, 15000},
		{80, model.TierPlatinum, 20000},
		{94.999, model.TierPlatinum, 20000},
		{95, model.TierDiamond, 25000},
		{100, model.TierDiamond, 25000},
	}
	for _, c := range cases {
		tier, bps := TierForOverall(c.overall)
		assert.Equal(t, c.tier, tier, "overall=%v", c.overall)
		assert.Equal(t, c.bps, bps, "overall=%v", c.overall)
	}
}

func TestRecalculateScoresAndTier(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repLogic.SetNowFunc(func() time.Time { return now })

	creator := createTestCreator(t, db, "0xcreator1", 0)
	// 一条 60 天前的视频：freshness = min(100, 0 + 20) = 20
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -60), 80, 4.0)

	score, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)

	assert.InDelta(t, 20, score.Freshness, 1e-9)
	assert.InDelta(t, 80, score.CompletionRate, 1e-9)
	assert.InDelta(t, 80, score.UserRating, 1e-9) // 4星 → 80
	assert.InDelta(t, 70, score.Accessibility, 1e-9)
	assert.InDelta(t, 70, score.NoBounce, 1e-9)
	// 0.3*20 + 0.25*80 + 0.25*80 + 0.1*70 + 0.1*70 = 60
	assert.InDelta(t, 60, score.Overall, 1e-9)
	assert.Equal(t, string(model.TierGold), score.Tier)
	assert.Equal(t, int64(15000), score.MultiplierBps)
}

func TestRecalculateFreshnessCapped(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repLogic.SetNowFunc(func() time.Time { return now })

	creator := createTestCreator(t, db, "0xcreator1", 0)
	// 全部视频都在 30 天内更新：100*1 + 20 截到 100
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -1), 90, 5.0)
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -2), 90, 5.0)

	score, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)
	assert.InDelta(t, 100, score.Freshness, 1e-9)
	// 0.3*100 + 0.25*90 + 0.25*100 + 0.1*70 + 0.1*70 = 91.5 → platinum
	assert.InDelta(t, 91.5, score.Overall, 1e-9)
	assert.Equal(t, string(model.TierPlatinum), score.Tier)
}

func TestRecalculateNoContent(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	creator := createTestCreator(t, db, "0xcreator1", 0)

	// 没有已发布视频：显式空操作，不写入任何记录
	_, err := repLogic.Recalculate(creator.Id)
	require.ErrorIs(t, err, ErrNoContent)

	var count int64
	require.NoError(t, db.Model(&model.ReputationScore{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecalculateNoContentKeepsPriorScore(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	creator := createTestCreator(t, db, "0xcreator1", 0)
	createTestScore(t, db, creator.Id, model.TierGold, 15000)

	// 指标消失时旧评分保持不变，不做部分覆盖
	_, err := repLogic.Recalculate(creator.Id)
	require.ErrorIs(t, err, ErrNoContent)

	prior, err := repLogic.GetScore(creator.Id)
	require.NoError(t, err)
	assert.Equal(t, string(model.TierGold), prior.Tier)
	assert.Equal(t, int64(15000), prior.MultiplierBps)
}

func TestRecalculateIdempotent(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repLogic.SetNowFunc(func() time.Time { return now })

	creator := createTestCreator(t, db, "0xcreator1", 0)
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -10), 75, 3.5)
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -45), 85, 4.5)

	first, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)
	second, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)

	// 输入未变，重算结果逐位一致
	assert.Equal(t, first.Freshness, second.Freshness)
	assert.Equal(t, first.CompletionRate, second.CompletionRate)
	assert.Equal(t, first.UserRating, second.UserRating)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, first.MultiplierBps, second.MultiplierBps)

	// 重算是覆盖而非追加
	var count int64
	require.NoError(t, db.Model(&model.ReputationScore{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecalculateReplacesSnapshot(t *testing.T) {
	db := openTestDB(t)
	repLogic := NewReputationLogic(db, testReputationConfig())

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repLogic.SetNowFunc(func() time.Time { return now })

	creator := createTestCreator(t, db, "0xcreator1", 0)
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -60), 80, 4.0)

	first, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)
	assert.Equal(t, string(model.TierGold), first.Tier)

	// 新增一条近期高分视频后重算，快照被覆盖为新结果
	createTestVideo(t, db, creator.Id, now.AddDate(0, 0, -1), 95, 5.0)
	second, err := repLogic.Recalculate(creator.Id)
	require.NoError(t, err)
	assert.Greater(t, second.Overall, first.Overall)

	current, err := repLogic.GetScore(creator.Id)
	require.NoError(t, err)
	assert.Equal(t, second.Tier, current.Tier)
	assert.InDelta(t, second.Overall, current.Overall, 1e-9)
}
