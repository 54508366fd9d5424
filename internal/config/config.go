package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Sim      SimConfig      `mapstructure:"sim"`
	Economy  EconomyConfig  `mapstructure:"economy"`
	Units    UnitsConfig    `mapstructure:"units"`
	Bullets  BulletsConfig  `mapstructure:"bullets"`
	Bases    BasesConfig    `mapstructure:"bases"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	UI       UIConfig       `mapstructure:"ui"`
	Colors   ColorsConfig   `mapstructure:"colors"`
	Recorder RecorderConfig `mapstructure:"recorder"`
}

// SimConfig holds grid and terrain generation settings
type SimConfig struct {
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	TileSize       float64 `mapstructure:"tile_size"`
	HUDReserve     int     `mapstructure:"hud_reserve"`
	NoiseFrequency float64 `mapstructure:"noise_frequency"`
	Seed           int64   `mapstructure:"seed"` // 0 picks a time-based seed
	BaseCount      int     `mapstructure:"base_count"`
}

// EconomyConfig holds currency settings
type EconomyConfig struct {
	StartingFunds  int `mapstructure:"starting_funds"`
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
	IncomePerBase  int `mapstructure:"income_per_base"`
}

// UnitsConfig holds per-type unit stats
type UnitsConfig struct {
	Tank UnitStatsConfig `mapstructure:"tank"`
}

// UnitStatsConfig holds the stats of one unit type
type UnitStatsConfig struct {
	Speed             float64 `mapstructure:"speed"`
	Range             float64 `mapstructure:"range"`
	MaxHealth         float64 `mapstructure:"max_health"`
	ReloadMs          int     `mapstructure:"reload_ms"`
	Cost              int     `mapstructure:"cost"`
	MovingRangeFactor float64 `mapstructure:"moving_range_factor"`
}

// BulletsConfig holds projectile settings
type BulletsConfig struct {
	Speed                  float64 `mapstructure:"speed"`
	Size                   float64 `mapstructure:"size"`
	Damage                 float64 `mapstructure:"damage"`
	StationaryDamageFactor float64 `mapstructure:"stationary_damage_factor"`
}

// BasesConfig holds base settings
type BasesConfig struct {
	SpawnRadius float64 `mapstructure:"spawn_radius"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Events lists event types the event logger writes; empty means all.
	Events []string `mapstructure:"events"`
}

// ServerConfig holds headless runner configuration
type ServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	MaxSteps              int    `mapstructure:"max_steps"`
	StepMs                int    `mapstructure:"step_ms"`
	Realtime              bool   `mapstructure:"realtime"`
}

// UIConfig holds client configuration
type UIConfig struct {
	Title string `mapstructure:"title"`
	TPS   int    `mapstructure:"tps"`
}

// ColorsConfig holds client colors as RGB triples
type ColorsConfig struct {
	Player   [3]int `mapstructure:"player"`
	Computer [3]int `mapstructure:"computer"`
	Neutral  [3]int `mapstructure:"neutral"`
	Water    [3]int `mapstructure:"water"`
	Sand     [3]int `mapstructure:"sand"`
	Soil     [3]int `mapstructure:"soil"`
	Forest   [3]int `mapstructure:"forest"`
}

// RecorderConfig holds after-action recorder settings
type RecorderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty means in-memory
	// BatchSize is the number of buffered rows that triggers a flush.
	BatchSize int `mapstructure:"batch_size"`
}

var (
	// Global config instance. mu guards cfg, which the file watcher swaps.
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("sim.width", 30)
	v.SetDefault("sim.height", 20)
	v.SetDefault("sim.tile_size", 30.0)
	v.SetDefault("sim.hud_reserve", 4)
	v.SetDefault("sim.noise_frequency", 0.10)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.base_count", 7)

	v.SetDefault("economy.starting_funds", 300)
	v.SetDefault("economy.tick_interval_ms", 1000)
	v.SetDefault("economy.income_per_base", 2)

	v.SetDefault("units.tank.speed", 55.0)
	v.SetDefault("units.tank.range", 200.0)
	v.SetDefault("units.tank.max_health", 200.0)
	v.SetDefault("units.tank.reload_ms", 800)
	v.SetDefault("units.tank.cost", 100)
	v.SetDefault("units.tank.moving_range_factor", 0.8)

	v.SetDefault("bullets.speed", 400.0)
	v.SetDefault("bullets.size", 6.0)
	v.SetDefault("bullets.damage", 20.0)
	v.SetDefault("bullets.stationary_damage_factor", 0.7)

	v.SetDefault("bases.spawn_radius", 50.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", []string{})

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.enable_reflection", true)
	v.SetDefault("server.graceful_shutdown_delay", 5)
	v.SetDefault("server.max_steps", 6000)
	v.SetDefault("server.step_ms", 16)
	v.SetDefault("server.realtime", false)

	v.SetDefault("ui.title", "Grid Skirmish")
	v.SetDefault("ui.tps", 60)

	v.SetDefault("colors.player", []int{0, 0, 255})
	v.SetDefault("colors.computer", []int{255, 0, 0})
	v.SetDefault("colors.neutral", []int{255, 255, 255})
	v.SetDefault("colors.water", []int{0, 0, 128})
	v.SetDefault("colors.sand", []int{194, 178, 128})
	v.SetDefault("colors.soil", []int{0, 170, 0})
	v.SetDefault("colors.forest", []int{0, 120, 0})

	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.path", "")
	v.SetDefault("recorder.batch_size", 256)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grid-skirmish")
	}

	v.SetEnvPrefix("GSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		if configPath != "" && !isMissingFile(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		// Config file not found; use defaults
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	store(next)
	return nil
}

func store(next *Config) {
	mu.Lock()
	cfg = next
	mu.Unlock()
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	return Get()
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the working directory
// over the loaded configuration.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !isMissingFile(err) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
		return nil
	}

	return reload()
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return reload()
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. A change that fails to
// decode or validate keeps the previous config and is reported to onError.
// Both callbacks run on the watcher goroutine.
func WatchConfig(onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := reload(); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(Get())
		}
	})
	v.WatchConfig()
}

func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	store(next)
	return nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return strings.Contains(err.Error(), "no such file")
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		return fmt.Errorf("sim dimensions must be positive")
	}
	if c.Sim.TileSize <= 0 {
		return fmt.Errorf("sim.tile_size must be positive")
	}
	if c.Sim.HUDReserve < 0 {
		return fmt.Errorf("sim.hud_reserve must be non-negative")
	}
	if c.Sim.NoiseFrequency <= 0 {
		return fmt.Errorf("sim.noise_frequency must be positive")
	}
	if c.Sim.BaseCount < 2 {
		return fmt.Errorf("sim.base_count must be at least 2")
	}

	if c.Economy.StartingFunds < 0 {
		return fmt.Errorf("economy.starting_funds must be non-negative")
	}
	if c.Economy.TickIntervalMs <= 0 {
		return fmt.Errorf("economy.tick_interval_ms must be positive")
	}
	if c.Economy.IncomePerBase < 0 {
		return fmt.Errorf("economy.income_per_base must be non-negative")
	}

	t := c.Units.Tank
	if t.Speed <= 0 || t.Range <= 0 || t.MaxHealth <= 0 {
		return fmt.Errorf("units.tank speed, range and max_health must be positive")
	}
	if t.ReloadMs < 0 || t.Cost < 0 {
		return fmt.Errorf("units.tank reload_ms and cost must be non-negative")
	}
	if t.MovingRangeFactor <= 0 || t.MovingRangeFactor > 1 {
		return fmt.Errorf("units.tank.moving_range_factor must be in (0, 1]")
	}

	if c.Bullets.Speed <= 0 || c.Bullets.Size <= 0 {
		return fmt.Errorf("bullets speed and size must be positive")
	}
	if c.Bullets.Damage < 0 {
		return fmt.Errorf("bullets.damage must be non-negative")
	}
	if c.Bullets.StationaryDamageFactor < 0 || c.Bullets.StationaryDamageFactor > 1 {
		return fmt.Errorf("bullets.stationary_damage_factor must be between 0 and 1")
	}

	if c.Bases.SpawnRadius < 0 {
		return fmt.Errorf("bases.spawn_radius must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.MaxSteps < 0 {
		return fmt.Errorf("server.max_steps must be non-negative")
	}
	if c.Server.StepMs <= 0 {
		return fmt.Errorf("server.step_ms must be positive")
	}

	if c.UI.TPS <= 0 {
		return fmt.Errorf("ui.tps must be positive")
	}

	validateRGB := func(rgb [3]int, name string) error {
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}
	for name, rgb := range map[string][3]int{
		"colors.player":   c.Colors.Player,
		"colors.computer": c.Colors.Computer,
		"colors.neutral":  c.Colors.Neutral,
		"colors.water":    c.Colors.Water,
		"colors.sand":     c.Colors.Sand,
		"colors.soil":     c.Colors.Soil,
		"colors.forest":   c.Colors.Forest,
	} {
		if err := validateRGB(rgb, name); err != nil {
			return err
		}
	}

	if c.Recorder.BatchSize <= 0 {
		return fmt.Errorf("recorder.batch_size must be positive")
	}

	return nil
}
