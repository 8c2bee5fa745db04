package config

import (
	"math/big"

	"github.com/spf13/viper"

	"github.com/wayfind/res/internal/logger"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Task       TaskConfig       `mapstructure:"task"`
	Log        LogConfig        `mapstructure:"log"`
	Token      TokenConfig      `mapstructure:"token"`
	Reputation ReputationConfig `mapstructure:"reputation"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链上燃烧事件监听配置
type ChainConfig struct {
	Enabled       bool   `mapstructure:"enabled"`        // 是否启用链上监听
	RpcUrl        string `mapstructure:"rpc_url"`        // RPC节点URL
	TokenContract string `mapstructure:"token_contract"` // 代币合约地址
	StartBlock    int64  `mapstructure:"start_block"`    // 监听起始区块号
	Confirmations int64  `mapstructure:"confirmations"`  // 确认区块数
}

type TaskConfig struct {
	EpochInterval   int `mapstructure:"epoch_interval"`   // 周期任务检查间隔（秒）
	MonitorInterval int `mapstructure:"monitor_interval"` // 链上监听间隔（秒）
	MonitorWorkers  int `mapstructure:"monitor_workers"`  // 事件处理协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// TokenConfig 平台级代币经济参数
type TokenConfig struct {
	BurnRatioBps    int64  `mapstructure:"burn_ratio_bps"`    // 燃烧比例（基点，7500 = 75%销毁，剩余进入再铸池）
	WeeklyRemintCap string `mapstructure:"weekly_remint_cap"` // 每周再铸上限（最小单位，十进制字符串）
	TokensPerCredit string `mapstructure:"tokens_per_credit"` // 每个积分所需代币数（最小单位）
}

// RemintCap 解析每周再铸上限
func (t TokenConfig) RemintCap() *big.Int {
	cap, ok := new(big.Int).SetString(t.WeeklyRemintCap, 10)
	if !ok || cap.Sign() < 0 {
		logger.Warn("Invalid weekly_remint_cap %q, falling back to default", t.WeeklyRemintCap)
		cap, _ = new(big.Int).SetString(defaultWeeklyRemintCap, 10)
	}
	return cap
}

// CreditRatio 解析积分兑换比例
func (t TokenConfig) CreditRatio() *big.Int {
	ratio, ok := new(big.Int).SetString(t.TokensPerCredit, 10)
	if !ok || ratio.Sign() <= 0 {
		logger.Warn("Invalid tokens_per_credit %q, falling back to default", t.TokensPerCredit)
		ratio, _ = new(big.Int).SetString(defaultTokensPerCredit, 10)
	}
	return ratio
}

// ReputationConfig 声誉评分配置
//
// accessibility 与 no_bounce 是占位基线：无障碍分析与会话跳出分析组件
// 上线前先使用固定默认值，不代表真实信号。
type ReputationConfig struct {
	AccessibilityBaseline float64 `mapstructure:"accessibility_baseline"`
	NoBounceBaseline      float64 `mapstructure:"no_bounce_baseline"`
}

const (
	defaultWeeklyRemintCap = "500000000000" // 50万代币（6位小数）
	defaultTokensPerCredit = "1000000"      // 1代币兑1积分
)

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/res")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "wayfind")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.start_block", 0)
	viper.SetDefault("chain.confirmations", 12)
	viper.SetDefault("task.epoch_interval", 3600)
	viper.SetDefault("task.monitor_interval", 60)
	viper.SetDefault("task.monitor_workers", 4)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")
	viper.SetDefault("token.burn_ratio_bps", 7500)
	viper.SetDefault("token.weekly_remint_cap", defaultWeeklyRemintCap)
	viper.SetDefault("token.tokens_per_credit", defaultTokensPerCredit)
	viper.SetDefault("reputation.accessibility_baseline", 70.0)
	viper.SetDefault("reputation.no_bounce_baseline", 70.0)

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
