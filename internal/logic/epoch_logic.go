package logic

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/logger"
	"github.com/wayfind/res/internal/model"
)

// EpochLogic 周期分配业务逻辑
type EpochLogic struct {
	db        *gorm.DB
	remintCap *big.Int
}

// NewEpochLogic 创建周期分配业务逻辑
func NewEpochLogic(db *gorm.DB, cfg config.TokenConfig) *EpochLogic {
	return &EpochLogic{
		db:        db,
		remintCap: cfg.RemintCap(),
	}
}

// allocation 单个创作者的分配中间结果
type allocation struct {
	creator  *model.Creator
	bps      int64
	weighted *big.Int
}

// RunEpoch 执行一周的奖励分配
//
// 整个分配是一个事务：窗口重叠检查、池汇总与上限裁剪、按加权观看
// 占比取整分配、奖励行落库、周观看数清零、周期置为 completed。
// 任一步失败则全部回滚，系统状态如同本次运行未发生。
//
// 分配公式为单次加权占比：finalReward = floor(totalReminted × weightedViews / totalWeightedViews)，
// 倍率只通过 weightedViews 进入一次。取整剩余不分配给任何创作者。
// 超过周上限的入池额留存金库，不结转下期（见 DESIGN.md）。
func (e *EpochLogic) RunEpoch(weekStart, weekEnd time.Time) (*model.Epoch, error) {
	if weekStart.IsZero() || weekEnd.IsZero() {
		return nil, errors.New("周期窗口不能为空")
	}
	if !weekEnd.After(weekStart) {
		return nil, errors.New("周期结束时间必须晚于开始时间")
	}

	var epoch *model.Epoch
	err := e.db.Transaction(func(tx *gorm.DB) error {
		// 拒绝与 pending/processing/completed 周期的任何窗口重叠，防止双重计数；
		// failed 周期不占用窗口，可整体重试
		var overlap int64
		if err := tx.Model(&model.Epoch{}).
			Where("status <> ?", string(model.EpochStatusFailed)).
			Where("week_start < ? AND week_end > ?", weekEnd, weekStart).
			Count(&overlap).Error; err != nil {
			return fmt.Errorf("检查周期窗口失败: %w", err)
		}
		if overlap > 0 {
			return ErrEpochOverlap
		}

		var maxNumber int64
		if err := tx.Model(&model.Epoch{}).
			Select("COALESCE(MAX(epoch_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return fmt.Errorf("查询最大周期号失败: %w", err)
		}

		epoch = &model.Epoch{
			EpochNumber:   maxNumber + 1,
			WeekStart:     weekStart,
			WeekEnd:       weekEnd,
			TotalBurned:   model.NewBigInt(0),
			TotalPooled:   model.NewBigInt(0),
			TotalReminted: model.NewBigInt(0),
			Status:        string(model.EpochStatusProcessing),
		}
		if err := tx.Create(epoch).Error; err != nil {
			// 并发运行竞争同一个周期号时由唯一索引兜底
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEpochOverlap
			}
			return fmt.Errorf("创建周期失败: %w", err)
		}

		// 汇总窗口内 [weekStart, weekEnd) 的燃烧事件
		var burns []model.BurnEvent
		if err := tx.Where("burned_at >= ? AND burned_at < ?", weekStart, weekEnd).
			Find(&burns).Error; err != nil {
			return fmt.Errorf("获取窗口内燃烧事件失败: %w", err)
		}
		totalBurned := new(big.Int)
		totalPooled := new(big.Int)
		for i := range burns {
			totalBurned.Add(totalBurned, burns[i].BurnedAmount.Big())
			totalPooled.Add(totalPooled, burns[i].PoolAmount.Big())
		}
		totalReminted := new(big.Int).Set(totalPooled)
		if totalReminted.Cmp(e.remintCap) > 0 {
			totalReminted.Set(e.remintCap)
		}

		// 本周有观看的创作者才参与分配
		var creators []model.Creator
		if err := tx.Where("weekly_views > 0").Find(&creators).Error; err != nil {
			return fmt.Errorf("获取活跃创作者失败: %w", err)
		}

		allocations := make([]allocation, 0, len(creators))
		totalWeighted := new(big.Int)
		totalViews := new(big.Int)
		for i := range creators {
			bps, err := e.multiplierFor(tx, creators[i].Id)
			if err != nil {
				return err
			}
			weighted := new(big.Int).Mul(big.NewInt(creators[i].WeeklyViews), big.NewInt(bps))
			totalWeighted.Add(totalWeighted, weighted)
			totalViews.Add(totalViews, big.NewInt(creators[i].WeeklyViews))
			allocations = append(allocations, allocation{creator: &creators[i], bps: bps, weighted: weighted})
		}

		if totalWeighted.Sign() == 0 {
			// 没有符合条件的接收者：周期完成但池不分配
			return e.complete(tx, epoch, totalBurned, totalPooled, new(big.Int), 0)
		}

		for _, a := range allocations {
			final := new(big.Int).Mul(totalReminted, a.weighted)
			final.Div(final, totalWeighted)
			base := new(big.Int).Mul(totalReminted, big.NewInt(a.creator.WeeklyViews))
			base.Div(base, totalViews)

			line := &model.RewardLine{
				EpochId:       epoch.Id,
				EpochNumber:   epoch.EpochNumber,
				CreatorId:     a.creator.Id,
				ViewsSnapshot: a.creator.WeeklyViews,
				MultiplierBps: a.bps,
				BaseReward:    model.NewBigIntFromBig(base),
				FinalReward:   model.NewBigIntFromBig(final),
				Claimed:       false,
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("创建奖励行失败: %w", err)
			}
		}

		// 清零本周观看计数：本次分配消费了这一周的活动量
		if err := tx.Model(&model.Creator{}).Where("weekly_views > 0").
			Update("weekly_views", 0).Error; err != nil {
			return fmt.Errorf("清零周观看计数失败: %w", err)
		}

		return e.complete(tx, epoch, totalBurned, totalPooled, totalReminted, len(allocations))
	})
	if err != nil {
		if errors.Is(err, ErrEpochOverlap) {
			return nil, err
		}
		// 运行失败：留一条 failed 周期记录供运维排查，窗口可整体重试
		e.recordFailure(weekStart, weekEnd, err)
		return nil, err
	}

	logger.Info("Epoch %d completed: reminted %s to %d creators",
		epoch.EpochNumber, epoch.TotalReminted.String(), epoch.RecipientCount)
	return epoch, nil
}

// complete 回填汇总并将周期置为 completed
func (e *EpochLogic) complete(tx *gorm.DB, epoch *model.Epoch, burned, pooled, reminted *big.Int, recipients int) error {
	epoch.TotalBurned = model.NewBigIntFromBig(burned)
	epoch.TotalPooled = model.NewBigIntFromBig(pooled)
	epoch.TotalReminted = model.NewBigIntFromBig(reminted)
	epoch.RecipientCount = recipients
	epoch.Status = string(model.EpochStatusCompleted)

	updates := map[string]interface{}{
		"total_burned":    epoch.TotalBurned,
		"total_pooled":    epoch.TotalPooled,
		"total_reminted":  epoch.TotalReminted,
		"recipient_count": epoch.RecipientCount,
		"status":          epoch.Status,
	}
	if err := tx.Model(&model.Epoch{}).Where("id = ?", epoch.Id).Updates(updates).Error; err != nil {
		return fmt.Errorf("完成周期失败: %w", err)
	}
	return nil
}

// multiplierFor 读取创作者当前倍率快照，无评分记录时默认1.0倍
func (e *EpochLogic) multiplierFor(tx *gorm.DB, creatorID int64) (int64, error) {
	var score model.ReputationScore
	err := tx.Where("creator_id = ?", creatorID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultMultiplierBps, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询声誉评分失败: %w", err)
	}
	return score.MultiplierBps, nil
}

// recordFailure 在独立事务中落一条 failed 周期记录，尽力而为
func (e *EpochLogic) recordFailure(weekStart, weekEnd time.Time, cause error) {
	var maxNumber int64
	if err := e.db.Model(&model.Epoch{}).
		Select("COALESCE(MAX(epoch_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		logger.Error("Failed to record failed epoch: %v", err)
		return
	}
	failed := &model.Epoch{
		EpochNumber:   maxNumber + 1,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		TotalBurned:   model.NewBigInt(0),
		TotalPooled:   model.NewBigInt(0),
		TotalReminted: model.NewBigInt(0),
		Status:        string(model.EpochStatusFailed),
	}
	if err := e.db.Create(failed).Error; err != nil {
		logger.Error("Failed to record failed epoch: %v", err)
		return
	}
	logger.Error("Epoch run for [%s, %s) failed: %v",
		weekStart.Format(time.RFC3339), weekEnd.Format(time.RFC3339), cause)
}

// GetEpochByNumber 按周期号查询周期
func (e *EpochLogic) GetEpochByNumber(number int64) (*model.Epoch, error) {
	var epoch model.Epoch
	if err := e.db.Where("epoch_number = ?", number).First(&epoch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEpochNotFound
		}
		return nil, fmt.Errorf("查询周期失败: %w", err)
	}
	return &epoch, nil
}

// GetLatestEpoch 获取最近一个非失败周期，没有时返回 nil
func (e *EpochLogic) GetLatestEpoch() (*model.Epoch, error) {
	var epoch model.Epoch
	err := e.db.Where("status <> ?", string(model.EpochStatusFailed)).
		Order("epoch_number DESC").First(&epoch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询最近周期失败: %w", err)
	}
	return &epoch, nil
}

// GetEpochs 获取周期历史（分页，按周期号倒序）
func (e *EpochLogic) GetEpochs(page, pageSize int) ([]model.Epoch, int64, error) {
	var epochs []model.Epoch
	var total int64

	if err := e.db.Model(&model.Epoch{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取周期总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := e.db.Order("epoch_number DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&epochs).Error; err != nil {
		return nil, 0, fmt.Errorf("获取周期列表失败: %w", err)
	}

	return epochs, total, nil
}
