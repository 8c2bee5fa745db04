package task

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/logger"
	"github.com/wayfind/res/internal/logic"
)

// EpochJob 周期分配任务
//
// 每次触发时结算下一个尚未分配且已经完整结束的周窗口。
// 窗口从上一个周期的结束时间顺延，保证周期连续不重叠。
type EpochJob struct {
	db         *gorm.DB
	config     *config.Config
	epochLogic *logic.EpochLogic
}

// NewEpochJob 创建周期分配任务
func NewEpochJob(db *gorm.DB, cfg *config.Config) *EpochJob {
	return &EpochJob{
		db:         db,
		config:     cfg,
		epochLogic: logic.NewEpochLogic(db, cfg.Token),
	}
}

// GetName 获取任务名称
func (j *EpochJob) GetName() string {
	return "weekly_epoch_allocator"
}

// GetSchedule 获取调度配置
func (j *EpochJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.EpochInterval) * time.Second)
}

// Execute 执行任务
func (j *EpochJob) Execute() {
	logger.Info("Starting weekly epoch allocation task")

	weekStart, weekEnd, err := j.nextWindow()
	if err != nil {
		logger.Error("Failed to determine next epoch window: %v", err)
		return
	}

	// 窗口尚未结束，等下次触发再结算
	if weekEnd.After(time.Now().UTC()) {
		logger.Info("Epoch window not closed yet, skipping (window end: %s)", weekEnd.Format(time.RFC3339))
		return
	}

	epoch, err := j.epochLogic.RunEpoch(weekStart, weekEnd)
	if err != nil {
		// 并发触发下另一实例已经结算了同一窗口
		if errors.Is(err, logic.ErrEpochOverlap) {
			logger.Info("Epoch window already allocated, skipping")
			return
		}
		logger.Error("Failed to run epoch allocation: %v", err)
		return
	}

	logger.Info("Epoch %d allocated: reminted %s to %d recipients",
		epoch.EpochNumber, epoch.TotalReminted.String(), epoch.RecipientCount)
}

// nextWindow 计算下一个待结算的周窗口
func (j *EpochJob) nextWindow() (time.Time, time.Time, error) {
	latest, err := j.epochLogic.GetLatestEpoch()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var weekStart time.Time
	if latest != nil {
		weekStart = latest.WeekEnd.UTC()
	} else {
		// 没有历史周期时，从最近一个已结束的完整周（周一零点 UTC）开始
		weekStart = previousMonday(time.Now().UTC()).AddDate(0, 0, -7)
	}

	return weekStart, weekStart.AddDate(0, 0, 7), nil
}

// previousMonday 返回不晚于 t 的最近周一零点
func previousMonday(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
