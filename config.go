package main

import (
	"flag"
	"fmt"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

var (
	// 配置信息
	configPath   = flag.String("config", "", "TOML config file, values in the file override flags")
	mongoURI     = flag.String("mongo_uri", "", "mongo db uri")
	networkStr   = flag.String("network", "", "flight network [format: {fspath} or {db}.{col}], empty means the built-in sample")
	listen       = flag.String("listen", "localhost:52101", "connect listening address")
	logLevel     = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	logFile      = flag.String("log-file", "", "rotating log file (empty means stderr)")
	rateEndpoint = flag.String("rate-endpoint", "", "exchange rate service endpoint (empty means api.exchangerate-api.com)")
	rateTTL      = flag.Duration("rate-ttl", time.Hour, "exchange rate cache ttl")
	offline      = flag.Bool("offline", false, "use the static [rates] table of the config instead of the rate service")
	baseCurrency = flag.String("base-currency", "", "currency of flight prices when the network does not name one")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

type Config struct {
	Network  string `toml:"network"`
	MongoURI string `toml:"mongo_uri"`
	Listen   string `toml:"listen"`

	// 航线网络未指定计价货币时使用
	BaseCurrency string `toml:"base_currency"`

	LogLevel   string `toml:"log_level"`
	LogFile    string `toml:"log_file"`
	MaxLogSize int    `toml:"max_log_size"` // megabytes
	MaxLogAge  int    `toml:"max_log_age"`  // days

	RateEndpoint string `toml:"rate_endpoint"`
	RateTTL      string `toml:"rate_ttl"`
	Offline      bool   `toml:"offline"`
	// 离线汇率表，键为from+to（如"INRUSD"）
	Rates map[string]float64 `toml:"rates"`
}

// configFromFlags 以命令行参数为默认值，再用TOML文件覆盖
func configFromFlags() (*Config, error) {
	c := &Config{
		Network:      *networkStr,
		MongoURI:     *mongoURI,
		Listen:       *listen,
		BaseCurrency: *baseCurrency,
		LogLevel:     *logLevel,
		LogFile:      *logFile,
		MaxLogSize:   100,
		MaxLogAge:    28,
		RateEndpoint: *rateEndpoint,
		RateTTL:      rateTTL.String(),
		Offline:      *offline,
	}
	if *configPath != "" {
		if err := c.load(*configPath); err != nil {
			return nil, err
		}
	}
	return c, c.validate()
}

func (c *Config) load(filename string) error {
	if _, err := toml.DecodeFile(filename, c); err != nil {
		return fmt.Errorf("could not decode TOML config: %v", err)
	}
	return nil
}

func (c *Config) validate() error {
	if _, ok := LOG_LEVELS[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if _, err := time.ParseDuration(c.RateTTL); err != nil {
		return fmt.Errorf("invalid rate ttl %q: %v", c.RateTTL, err)
	}
	return nil
}

func (c *Config) rateTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.RateTTL)
	return ttl
}

// setupLogger 设置日志格式、级别与输出
func (c *Config) setupLogger() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	logrus.SetLevel(LOG_LEVELS[c.LogLevel])
	if c.LogFile != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename: c.LogFile,
			MaxSize:  c.MaxLogSize,
			MaxAge:   c.MaxLogAge,
		})
	}
}
