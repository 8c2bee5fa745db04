package task

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/database"
	"github.com/wayfind/res/internal/model"
)

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

func testConfig() *config.Config {
	return &config.Config{
		Task: config.TaskConfig{EpochInterval: 3600},
		Token: config.TokenConfig{
			BurnRatioBps:    7500,
			WeeklyRemintCap: "500000000000",
			TokensPerCredit: "1000000",
		},
	}
}

func TestPreviousMonday(t *testing.T) {
	// 2025-06-04 是周三
	wednesday := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), previousMonday(wednesday))

	// 周一当天返回自身零点
	monday := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), previousMonday(monday))

	// 周日回退六天
	sunday := time.Date(2025, 6, 8, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), previousMonday(sunday))
}

func TestNextWindowContinuesFromLatestEpoch(t *testing.T) {
	db := openTestDB(t)
	job := NewEpochJob(db, testConfig())

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)
	epoch := &model.Epoch{
		EpochNumber:   1,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		TotalBurned:   model.NewBigInt(0),
		TotalPooled:   model.NewBigInt(0),
		TotalReminted: model.NewBigInt(0),
		Status:        string(model.EpochStatusCompleted),
	}
	require.NoError(t, db.Create(epoch).Error)

	start, end, err := job.nextWindow()
	require.NoError(t, err)
	assert.True(t, start.Equal(weekEnd))
	assert.True(t, end.Equal(weekEnd.AddDate(0, 0, 7)))
}

func TestNextWindowWithoutHistory(t *testing.T) {
	db := openTestDB(t)
	job := NewEpochJob(db, testConfig())

	start, end, err := job.nextWindow()
	require.NoError(t, err)

	// 从最近一个已结束的完整周开始
	assert.Equal(t, time.Monday, start.Weekday())
	assert.True(t, end.Equal(start.AddDate(0, 0, 7)))
	assert.False(t, end.After(time.Now().UTC()))
}
