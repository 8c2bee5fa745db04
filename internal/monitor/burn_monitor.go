package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/chain"
	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/logger"
	"github.com/wayfind/res/internal/logic"
	"github.com/wayfind/res/internal/model"
)

const burnCursorName = "token_burn_monitor"

// 单次过滤的区块批量上限，避免RPC限制
const batchSize = int64(500)

// BurnMonitor 链上燃烧事件监控器
//
// 周期性拉取代币合约的燃烧日志并写入燃烧账本。
// 游标持久化在 chain_cursor 表中，重启后从上次处理的区块继续。
// 重复投递由账本的交易引用唯一约束吸收。
type BurnMonitor struct {
	client    *chain.Client
	db        *gorm.DB
	burnLogic *logic.BurnLogic
	pool      *ants.Pool
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBurnMonitor 创建燃烧事件监控器
func NewBurnMonitor(client *chain.Client, db *gorm.DB, cfg *config.Config) (*BurnMonitor, error) {
	pool, err := ants.NewPool(cfg.Task.MonitorWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor worker pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &BurnMonitor{
		client:    client,
		db:        db,
		burnLogic: logic.NewBurnLogic(db, cfg.Token),
		pool:      pool,
		interval:  time.Duration(cfg.Task.MonitorInterval) * time.Second,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start 启动监控
func (m *BurnMonitor) Start() error {
	logger.Info("Starting burn event monitor")

	currentBlock, err := m.client.GetLatestBlock(m.ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to blockchain: %w", err)
	}
	logger.Info("Connected to blockchain, current block: %d", currentBlock)

	go m.loop()

	return nil
}

// Stop 停止监控
func (m *BurnMonitor) Stop() {
	logger.Info("Stopping burn event monitor")
	m.cancel()
	m.pool.Release()
}

// loop 监控循环
func (m *BurnMonitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			logger.Info("Burn monitor stopped")
			return
		case <-ticker.C:
			if err := m.poll(); err != nil {
				logger.Error("Burn monitor poll failed: %v", err)
			}
		}
	}
}

// poll 处理一轮从游标到安全区块的燃烧日志
func (m *BurnMonitor) poll() error {
	latest, err := m.client.GetLatestBlock(m.ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}

	// 只处理已过确认期的区块，规避重组
	safeBlock := latest - m.client.Confirmations()
	fromBlock := m.nextBlock()
	if fromBlock > safeBlock {
		logger.Debug("No confirmed blocks to process (next: %d, safe: %d)", fromBlock, safeBlock)
		return nil
	}

	for currentFrom := fromBlock; currentFrom <= safeBlock; currentFrom += batchSize {
		currentTo := currentFrom + batchSize - 1
		if currentTo > safeBlock {
			currentTo = safeBlock
		}

		if err := m.processBatch(currentFrom, currentTo); err != nil {
			return fmt.Errorf("failed to process blocks %d-%d: %w", currentFrom, currentTo, err)
		}

		// 游标在整批成功后推进，失败重试时靠唯一约束去重
		if err := m.saveCursor(currentTo); err != nil {
			return fmt.Errorf("failed to save cursor at block %d: %w", currentTo, err)
		}
	}

	return nil
}

// processBatch 拉取并记录一批区块内的燃烧日志
func (m *BurnMonitor) processBatch(fromBlock, toBlock int64) error {
	burns, err := m.client.FilterBurnLogs(m.ctx, fromBlock, toBlock)
	if err != nil {
		return err
	}

	if len(burns) == 0 {
		logger.Debug("No burn logs in blocks %d-%d", fromBlock, toBlock)
		return nil
	}

	logger.Info("Found %d burn logs in blocks %d-%d", len(burns), fromBlock, toBlock)

	var wg sync.WaitGroup
	for _, burn := range burns {
		burn := burn
		wg.Add(1)
		err := m.pool.Submit(func() {
			defer wg.Done()
			m.recordBurn(burn)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit burn task to pool: %v", err)
		}
	}
	wg.Wait()

	return nil
}

// recordBurn 将单条链上燃烧日志写入账本
func (m *BurnMonitor) recordBurn(burn chain.BurnLog) {
	_, err := m.burnLogic.RecordBurn(burn.TxRef, burn.Wallet, burn.Amount, burn.BurnedAt)
	if err != nil {
		// 重复日志来自游标回退后的重放，静默丢弃
		if errors.Is(err, logic.ErrDuplicateBurn) {
			logger.Debug("Skipping duplicate burn %s", burn.TxRef)
			return
		}
		logger.Error("Failed to record burn %s: %v", burn.TxRef, err)
		return
	}

	logger.Info("Recorded burn %s: wallet %s burned %s at block %d",
		burn.TxRef, burn.Wallet, burn.Amount.String(), burn.BlockNumber)
}

// nextBlock 获取下一个待处理的区块号
func (m *BurnMonitor) nextBlock() int64 {
	var cursor model.ChainCursor
	err := m.db.Where("name = ?", burnCursorName).First(&cursor).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to load chain cursor: %v", err)
		}
		return m.client.StartBlock()
	}
	return cursor.LastBlock + 1
}

// saveCursor 持久化已处理的最后区块号
func (m *BurnMonitor) saveCursor(lastBlock int64) error {
	var cursor model.ChainCursor
	err := m.db.Where("name = ?", burnCursorName).First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m.db.Create(&model.ChainCursor{
				Name:      burnCursorName,
				LastBlock: lastBlock,
			}).Error
		}
		return err
	}

	return m.db.Model(&cursor).Update("last_block", lastBlock).Error
}
