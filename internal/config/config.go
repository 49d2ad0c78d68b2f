package config

import (
	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8080")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" for stdout
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Health monitoring configuration
 * @property {float64} memory_threshold_percent - Memory usage above this is unhealthy
 * @property {float64} disk_threshold_percent - Disk usage above this is unhealthy
 * @property {float64} cpu_threshold_percent - CPU usage above this is unhealthy
 * @property {int} metrics_cache_seconds - Reuse window for cached system metric checks
 * @property {int} monitor_interval_seconds - Period of the scheduled health check job
 * @property {int} backend_port - Port probed by the backend HTTP self-check
 */
type HealthConfig struct {
	MemoryThresholdPercent float64 `mapstructure:"memory_threshold_percent"`
	DiskThresholdPercent   float64 `mapstructure:"disk_threshold_percent"`
	CPUThresholdPercent    float64 `mapstructure:"cpu_threshold_percent"`
	MetricsCacheSeconds    int     `mapstructure:"metrics_cache_seconds"`
	MonitorIntervalSeconds int     `mapstructure:"monitor_interval_seconds"`
	BackendPort            int     `mapstructure:"backend_port"`
}

/**
 * Redis connection configuration used by the cache component probe
 */
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

/**
 * Optional components enabled in the running application.
 * Controls which component probes are registered at startup.
 */
type ComponentsConfig struct {
	Redis     bool `mapstructure:"redis"`
	Worker    bool `mapstructure:"worker"`
	Scheduler bool `mapstructure:"scheduler"`
}

/**
 * Scaffolding configuration
 * @property {string} registry_overlay - Optional YAML file overriding the builtin component registry
 */
type ScaffoldConfig struct {
	RegistryOverlay string `mapstructure:"registry_overlay"`
}

type AppConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Health     HealthConfig     `mapstructure:"health"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Components ComponentsConfig `mapstructure:"components"`
	Scaffold   ScaffoldConfig   `mapstructure:"scaffold"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Health.MemoryThresholdPercent == 0 {
		cfg.Health.MemoryThresholdPercent = 90.0
	}
	if cfg.Health.DiskThresholdPercent == 0 {
		cfg.Health.DiskThresholdPercent = 90.0
	}
	if cfg.Health.CPUThresholdPercent == 0 {
		cfg.Health.CPUThresholdPercent = 95.0
	}
	if cfg.Health.MetricsCacheSeconds == 0 {
		cfg.Health.MetricsCacheSeconds = 30
	}
	if cfg.Health.MonitorIntervalSeconds == 0 {
		cfg.Health.MonitorIntervalSeconds = 60
	}
	if cfg.Health.BackendPort == 0 {
		cfg.Health.BackendPort = 8080
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	return cfg
}

/**
 * Reload configuration from disk, replacing the process-wide Config
 */
func ReloadConfig() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	Config = *cfg
	collectConfig(&Config)
	return nil
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
