package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	AWS    AWS
	Redis  Redis
}

type Server struct {
	Port string
}

type AWS struct {
	Region string
	Bucket string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Load reads config/config.yaml when present and lets environment
// variables override everything. A missing file is fine; the defaults
// below carry a local setup.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("aws.region", "ap-northeast-1")
	v.SetDefault("aws.bucket", "koja-chat-images")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("failed to read config file: %v", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unable to unmarshal config: %v", err)
	}

	if port := v.GetString("PORT"); port != "" {
		c.Server.Port = port
	}
	if region := v.GetString("AWS_REGION"); region != "" {
		c.AWS.Region = region
	}
	if bucket := v.GetString("S3_BUCKET_NAME"); bucket != "" {
		c.AWS.Bucket = bucket
	}
	if addr := v.GetString("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := v.GetString("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}

	return &c
}
