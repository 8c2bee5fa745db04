package model

import (
	"database/sql/driver"
	"fmt"
	"math/big"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BigInt 任意精度整数（代币最小单位），数据库中以十进制字符串存储
type BigInt struct {
	big.Int
}

// NewBigInt 从 int64 创建 BigInt
func NewBigInt(v int64) *BigInt {
	b := new(BigInt)
	b.SetInt64(v)
	return b
}

// NewBigIntFromBig 从 big.Int 复制创建 BigInt
func NewBigIntFromBig(v *big.Int) *BigInt {
	b := new(BigInt)
	if v != nil {
		b.Set(v)
	}
	return b
}

// ParseBigInt 解析十进制字符串
func ParseBigInt(s string) (*BigInt, error) {
	b := new(BigInt)
	if _, ok := b.SetString(s, 10); !ok {
		return nil, fmt.Errorf("无效的整数字符串: %q", s)
	}
	return b, nil
}

// Big 返回底层 big.Int 的副本
func (b *BigInt) Big() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(&b.Int)
}

// Scan 实现 sql.Scanner 接口
func (b *BigInt) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		b.SetInt64(0)
		return nil
	case int64:
		b.SetInt64(v)
		return nil
	case []byte:
		return b.setString(string(v))
	case string:
		return b.setString(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 BigInt", value)
	}
}

func (b *BigInt) setString(s string) error {
	if s == "" {
		b.SetInt64(0)
		return nil
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("无效的整数字符串: %q", s)
	}
	return nil
}

// Value 实现 driver.Valuer 接口
func (b BigInt) Value() (driver.Value, error) {
	return b.String(), nil
}

// GormDBDataType 按数据库方言选择列类型
func (BigInt) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "numeric(78,0)"
	}
	return "text"
}
