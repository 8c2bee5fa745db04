package logic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/model"
)

const bpsDenominator = 10000

// BurnLogic 燃烧账本业务逻辑
type BurnLogic struct {
	db              *gorm.DB
	burnRatioBps    int64
	tokensPerCredit *big.Int
}

// NewBurnLogic 创建燃烧账本业务逻辑
func NewBurnLogic(db *gorm.DB, cfg config.TokenConfig) *BurnLogic {
	return &BurnLogic{
		db:              db,
		burnRatioBps:    cfg.BurnRatioBps,
		tokensPerCredit: cfg.CreditRatio(),
	}
}

// RecordBurn 记录一次代币燃烧
//
// 按平台燃烧比例拆分销毁额与入池额，两者相加恒等于总额；
// 同时按兑换比例向燃烧钱包授予积分。txRef 为幂等键，
// 重复提交返回 ErrDuplicateBurn，上游按无操作成功处理。
func (b *BurnLogic) RecordBurn(txRef, wallet string, grossAmount *big.Int, burnedAt time.Time) (*model.BurnEvent, error) {
	txRef = strings.TrimSpace(txRef)
	wallet = strings.TrimSpace(wallet)
	if txRef == "" {
		return nil, errors.New("交易引用不能为空")
	}
	if wallet == "" {
		return nil, errors.New("钱包地址不能为空")
	}
	if grossAmount == nil || grossAmount.Sign() <= 0 {
		return nil, errors.New("燃烧金额必须大于0")
	}
	if burnedAt.IsZero() {
		burnedAt = time.Now().UTC()
	}

	// 销毁额向下取整，入池额取余量，保证两者相加不丢精度
	burned := new(big.Int).Mul(grossAmount, big.NewInt(b.burnRatioBps))
	burned.Div(burned, big.NewInt(bpsDenominator))
	pool := new(big.Int).Sub(grossAmount, burned)
	credits := new(big.Int).Div(grossAmount, b.tokensPerCredit)

	event := &model.BurnEvent{
		TxRef:          txRef,
		Wallet:         wallet,
		GrossAmount:    model.NewBigIntFromBig(grossAmount),
		BurnedAmount:   model.NewBigIntFromBig(burned),
		PoolAmount:     model.NewBigIntFromBig(pool),
		CreditsGranted: model.NewBigIntFromBig(credits),
		BurnedAt:       burnedAt,
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		var existing model.BurnEvent
		err := tx.Where("tx_ref = ?", txRef).First(&existing).Error
		if err == nil {
			return ErrDuplicateBurn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询燃烧事件失败: %w", err)
		}

		if err := tx.Create(event).Error; err != nil {
			// 并发重复提交由唯一索引兜底
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBurn
			}
			return fmt.Errorf("创建燃烧事件失败: %w", err)
		}

		return b.grantCredits(tx, wallet, grossAmount, credits)
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// grantCredits 向燃烧钱包累加积分与燃烧总额
func (b *BurnLogic) grantCredits(tx *gorm.DB, wallet string, grossAmount, credits *big.Int) error {
	var credit model.WalletCredit
	err := tx.Where("wallet = ?", wallet).First(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		credit = model.WalletCredit{
			Wallet:      wallet,
			Credits:     model.NewBigIntFromBig(credits),
			TotalBurned: model.NewBigIntFromBig(grossAmount),
		}
		if err := tx.Create(&credit).Error; err != nil {
			return fmt.Errorf("创建钱包积分账户失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询钱包积分账户失败: %w", err)
	}

	newCredits := new(big.Int).Add(credit.Credits.Big(), credits)
	newBurned := new(big.Int).Add(credit.TotalBurned.Big(), grossAmount)
	updates := map[string]interface{}{
		"credits":      model.NewBigIntFromBig(newCredits),
		"total_burned": model.NewBigIntFromBig(newBurned),
	}
	if err := tx.Model(&credit).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新钱包积分账户失败: %w", err)
	}
	return nil
}

// GetBurnByTxRef 按交易引用查询燃烧事件
func (b *BurnLogic) GetBurnByTxRef(txRef string) (*model.BurnEvent, error) {
	var event model.BurnEvent
	if err := b.db.Where("tx_ref = ?", strings.TrimSpace(txRef)).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("燃烧事件不存在")
		}
		return nil, fmt.Errorf("查询燃烧事件失败: %w", err)
	}
	return &event, nil
}

// GetWalletBurns 获取钱包燃烧记录（分页）
func (b *BurnLogic) GetWalletBurns(wallet string, page, pageSize int) ([]model.BurnEvent, int64, error) {
	var events []model.BurnEvent
	var total int64

	if err := b.db.Model(&model.BurnEvent{}).Where("wallet = ?", wallet).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取燃烧记录总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := b.db.Where("wallet = ?", wallet).
		Order("burned_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取燃烧记录失败: %w", err)
	}

	return events, total, nil
}

// GetWalletCredit 获取钱包积分账户
func (b *BurnLogic) GetWalletCredit(wallet string) (*model.WalletCredit, error) {
	var credit model.WalletCredit
	err := b.db.Where("wallet = ?", strings.TrimSpace(wallet)).First(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 从未燃烧过的钱包返回零账户
		return &model.WalletCredit{
			Wallet:      wallet,
			Credits:     model.NewBigInt(0),
			TotalBurned: model.NewBigInt(0),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询钱包积分账户失败: %w", err)
	}
	return &credit, nil
}

// BurnStats 燃烧统计
type BurnStats struct {
	EventCount   int64    `json:"event_count"`
	TotalGross   *big.Int `json:"total_gross"`
	TotalBurned  *big.Int `json:"total_burned"`
	TotalPooled  *big.Int `json:"total_pooled"`
	TotalCredits *big.Int `json:"total_credits"`
}

// GetBurnStats 获取全局燃烧统计信息
func (b *BurnLogic) GetBurnStats() (*BurnStats, error) {
	var events []model.BurnEvent
	if err := b.db.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取燃烧事件失败: %w", err)
	}

	stats := &BurnStats{
		EventCount:   int64(len(events)),
		TotalGross:   new(big.Int),
		TotalBurned:  new(big.Int),
		TotalPooled:  new(big.Int),
		TotalCredits: new(big.Int),
	}
	for i := range events {
		stats.TotalGross.Add(stats.TotalGross, events[i].GrossAmount.Big())
		stats.TotalBurned.Add(stats.TotalBurned, events[i].BurnedAmount.Big())
		stats.TotalPooled.Add(stats.TotalPooled, events[i].PoolAmount.Big())
		stats.TotalCredits.Add(stats.TotalCredits, events[i].CreditsGranted.Big())
	}
	return stats, nil
}
