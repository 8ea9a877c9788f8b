package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（与 config/config.yaml 对应）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Scraper  ScraperConfig  `mapstructure:"scraper"`  // 外部抓取配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port  int    `mapstructure:"port"`  // 服务端口
	Mode  string `mapstructure:"mode"`  // Gin运行模式：debug/release/test
	Pprof bool   `mapstructure:"pprof"` // 是否注册 /debug/pprof
	// 允许跨域的来源，空则不启用 CORS
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // sqlite / postgres
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（sqlite 为文件路径）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// ScraperConfig 外部开奖结果抓取配置
type ScraperConfig struct {
	Kind         string `mapstructure:"kind"`          // 来源类型，对应已注册的适配器（默认 web）
	URL          string `mapstructure:"url"`           // 抓取地址
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	Proxy        string `mapstructure:"proxy"`         // 代理地址
	UserAgent    string `mapstructure:"user_agent"`    // 请求头 User-Agent
	DateSelector string `mapstructure:"date_selector"` // 开奖日期所在元素（简单CSS选择器），空则自动识别
	Cron         string `mapstructure:"cron"`          // 定时抓取 Cron 表达式，空则不启用
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// DefaultScrapeTimeout 外部抓取的固定超时（秒）
const DefaultScrapeTimeout = 30

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "lottery.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("scraper.kind", "web")
	v.SetDefault("scraper.timeout", DefaultScrapeTimeout)
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (compatible; LotterySync/1.0)")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
// 配置文件不存在时使用默认值
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录加载 config.yaml
func LoadConfigFrom(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 环境变量覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖部署相关配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("LOTTERY_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("LOTTERY_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOTTERY_SCRAPE_URL"); v != "" {
		cfg.Scraper.URL = v
	}
	if v := os.Getenv("LOTTERY_SCRAPE_PROXY"); v != "" {
		cfg.Scraper.Proxy = v
	}
	if v := os.Getenv("LOTTERY_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// Validate 校验必填项
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn 不能为空")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("非法端口: %d", c.Server.Port)
	}
	if c.Scraper.Timeout <= 0 {
		c.Scraper.Timeout = DefaultScrapeTimeout
	}
	return nil
}

// TimeoutDuration 抓取超时
func (s *ScraperConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
