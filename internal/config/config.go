package config

import (
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

/*
init與read分開處理
init : 設置viper watch與onConfigChange，程式生命週期只做一次
read : 一般讀取，走讀寫鎖
*/
var configSingleton *ConfigSingleton
var muOnce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ModulerName     string `mapstructure:"MODULER_NAME"`
	DbName          string `mapstructure:"POSTGRES_DB"`
	DbHost          string `mapstructure:"POSTGRES_HOST"`
	DbPort          string `mapstructure:"POSTGRES_PORT"`
	DbUser          string `mapstructure:"POSTGRES_USER"`
	DbPas           string `mapstructure:"POSTGRES_PASSWORD"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`
	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY"`
}

// KafkaBrokerList KAFKA_BROKERS用逗號分隔多個broker
func (c *Config) KafkaBrokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	if configSingleton == nil {
		muOnce.Do(func() {
			configSingleton = &ConfigSingleton{}
			if cf, err := loadConfig(); err == nil {
				configSingleton.Config = cf
			} else {
				log.Fatalf("error read config: %v", err)
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					configSingleton.mu.Lock()
					configSingleton.Config = cf
					configSingleton.mu.Unlock()
				} else {
					log.Printf("failed to reload config file: %v", err)
				}
			})
		})
	}
}

/*
單純回傳錯誤，由外部決定要不要Fatal
*/
func loadConfig() (cf *Config, err error) {
	cf = &Config{}
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("KAFKA_ORDER_TOPIC", "order.confirmed")
	viper.SetDefault("DEFAULT_CURRENCY", "ARS")

	// .env不存在就只靠環境變數
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config file not loaded, fallback to env: %v", err)
		}
		err = nil
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}
	return
}
