package logic

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/database"
	"github.com/wayfind/res/internal/model"
)

// openTestDB 打开内存数据库并迁移全部表结构
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		BurnRatioBps:    7500,
		WeeklyRemintCap: "500000000000",
		TokensPerCredit: "1000000",
	}
}

func testReputationConfig() config.ReputationConfig {
	return config.ReputationConfig{
		AccessibilityBaseline: 70,
		NoBounceBaseline:      70,
	}
}

func createTestCreator(t *testing.T, db *gorm.DB, wallet string, weeklyViews int64) *model.Creator {
	t.Helper()
	creator := &model.Creator{
		Wallet:        wallet,
		PayoutAddress: wallet,
		WeeklyViews:   weeklyViews,
		TotalViews:    weeklyViews,
		TotalEarned:   model.NewBigInt(0),
	}
	require.NoError(t, db.Create(creator).Error)
	return creator
}

func createTestScore(t *testing.T, db *gorm.DB, creatorID int64, tier model.CreatorTier, bps int64) {
	t.Helper()
	score := &model.ReputationScore{
		CreatorId:     creatorID,
		Tier:          string(tier),
		MultiplierBps: bps,
	}
	require.NoError(t, db.Create(score).Error)
}

func createTestVideo(t *testing.T, db *gorm.DB, creatorID int64, updatedAt time.Time, completion, rating float64) {
	t.Helper()
	published := updatedAt
	video := &model.Video{
		CreatorId:        creatorID,
		Status:           string(model.VideoStatusPublished),
		PublishedAt:      &published,
		ContentUpdatedAt: updatedAt,
		CompletionRate:   completion,
		AvgRating:        rating,
	}
	require.NoError(t, db.Create(video).Error)
}
