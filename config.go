package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"BRAPI_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"BRAPI_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"BRAPI_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"BRAPI_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"BRAPI_LOG_LEVEL"`
	LogFile            string        `yaml:"log_file" envconfig:"BRAPI_LOG_FILE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"BRAPI_PROFILER_ENABLE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"BRAPI_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Redis              RedisConfig   `yaml:"redis"`
	Cache              CacheConfig   `yaml:"cache"`
	SQLite             SQLiteConfig  `yaml:"sqlite"`
	Audit              AuditConfig   `yaml:"audit"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BRAPI_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BRAPI_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BRAPI_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BRAPI_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BRAPI_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BRAPI_SERVER_SHUTDOWN_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BRAPI_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"BRAPI_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BRAPI_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BRAPI_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BRAPI_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BRAPI_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BRAPI_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"BRAPI_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"BRAPI_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BRAPI_REDIS_DATABASE_INDEX"`
}

// CacheConfig drives the books listing cache behavior. TTL bounds how
// stale a listing entry may be served. OpTimeout caps every single call
// to the cache backend so a stuck cache never holds a request hostage.
type CacheConfig struct {
	TTL          time.Duration `yaml:"ttl" envconfig:"BRAPI_CACHE_TTL"`
	OpTimeout    time.Duration `yaml:"op_timeout" envconfig:"BRAPI_CACHE_OP_TIMEOUT"`
	KeyNamespace string        `yaml:"key_namespace" envconfig:"BRAPI_CACHE_KEY_NAMESPACE"`
}

type SQLiteConfig struct {
	FilePath    string        `yaml:"filepath" envconfig:"BRAPI_SQLITE_FILE_PATH"`
	BusyTimeout time.Duration `yaml:"busy_timeout" envconfig:"BRAPI_SQLITE_BUSY_TIMEOUT"`
}

type AuditConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BRAPI_AUDIT_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BRAPI_AUDIT_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"BRAPI_AUDIT_BUCKET_NAME"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if len(config.SQLite.FilePath) == 0 {
		return errors.New("make sure to set a valid sqlite database path in configuration file")
	}

	if config.Cache.TTL <= 0 {
		config.Cache.TTL = 300 * time.Second
	}

	if config.Cache.OpTimeout <= 0 {
		config.Cache.OpTimeout = 200 * time.Millisecond
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BRAPI`.
	err = LoadConfigEnvs("BRAPI", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
