package logic

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wayfind/res/internal/model"
)

// CreatorLogic 创作者账户业务逻辑
type CreatorLogic struct {
	db *gorm.DB
}

// NewCreatorLogic 创建创作者账户业务逻辑
func NewCreatorLogic(db *gorm.DB) *CreatorLogic {
	return &CreatorLogic{db: db}
}

// Register 注册创作者
func (c *CreatorLogic) Register(wallet, payoutAddress string) (*model.Creator, error) {
	wallet = strings.TrimSpace(wallet)
	payoutAddress = strings.TrimSpace(payoutAddress)
	if wallet == "" {
		return nil, errors.New("钱包地址不能为空")
	}
	if payoutAddress == "" {
		payoutAddress = wallet
	}

	creator := &model.Creator{
		Wallet:        wallet,
		PayoutAddress: payoutAddress,
		TotalEarned:   model.NewBigInt(0),
	}
	if err := c.db.Create(creator).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("该钱包已注册为创作者")
		}
		return nil, fmt.Errorf("注册创作者失败: %w", err)
	}
	return creator, nil
}

// GetCreator 获取创作者详情
func (c *CreatorLogic) GetCreator(id int64) (*model.Creator, error) {
	var creator model.Creator
	if err := c.db.First(&creator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("查询创作者失败: %w", err)
	}
	return &creator, nil
}

// GetCreatorByWallet 按钱包地址获取创作者
func (c *CreatorLogic) GetCreatorByWallet(wallet string) (*model.Creator, error) {
	var creator model.Creator
	if err := c.db.Where("wallet = ?", strings.TrimSpace(wallet)).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("查询创作者失败: %w", err)
	}
	return &creator, nil
}
