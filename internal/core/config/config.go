package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
	// AllowAdminModify 为 true 时允许管理员修改/删除其他管理员账号
	AllowAdminModify bool
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
	// File 非空时同时写文件并按大小切割
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret string
	Issuer string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Places struct {
	APIKey string `mapstructure:"api_key"`
}

type RateLimit struct {
	// HandleCheckPerMin 未认证的 handle 可用性查询，按来源 IP 限次
	HandleCheckPerMin int `mapstructure:"handle_check_per_min"`
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis     `mapstructure:"redis"`
	SMTP      SMTP      `mapstructure:"smtp"`
	Places    Places    `mapstructure:"places"`
	RateLimit RateLimit `mapstructure:"ratelimit"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	c.validate()
	return &c
}

// validate 启动期校验：缺关键配置直接退出，不留到请求期才炸
func (c *Config) validate() {
	if c.JWT.Secret == "" {
		log.Fatal("config: jwt.secret is required")
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = c.App.Name
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "cardlink"
	}
	if c.RateLimit.HandleCheckPerMin <= 0 {
		c.RateLimit.HandleCheckPerMin = 20
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}
