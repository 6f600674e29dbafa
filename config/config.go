// Package config loads the yaml configuration shared by the binaries.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cheesechase/game"
	"cheesechase/sim"
)

// Config is the full configuration file. Zero fields take defaults from
// Default, so a partial file only overrides what it names.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Rewards RewardsConfig `yaml:"rewards"`
	Eval    EvalConfig    `yaml:"eval"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig tunes the run parameters of a fresh state.
type GameConfig struct {
	Life       int `yaml:"life"`
	StepLimit  int `yaml:"step_limit"`
	RedZone    int `yaml:"red_zone"`
	FuncChance int `yaml:"func_chance"`
}

// RewardsConfig holds the per-event score deltas.
type RewardsConfig struct {
	Cheese        int `yaml:"cheese"`
	BigCheese     int `yaml:"big_cheese"`
	CatCollision  int `yaml:"cat_collision"`
	WallCollision int `yaml:"wall_collision"`
}

// EvalConfig tunes the batch evaluator.
type EvalConfig struct {
	Workers     int    `yaml:"workers"`
	Seed        int64  `yaml:"seed"`
	Candidates  int    `yaml:"candidates"`
	OutDir      string `yaml:"out_dir"`
	ArchivePath string `yaml:"archive_path"`
	LibraryPath string `yaml:"library_path"`
}

// ServerConfig tunes the websocket evaluation service.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBatchSize int    `yaml:"max_batch_size"`
}

// LogConfig tunes logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Life:       game.DefaultLife,
			StepLimit:  game.DefaultStepLimit,
			RedZone:    game.DefaultRedZone,
			FuncChance: game.DefaultFuncChance,
		},
		Rewards: RewardsConfig{
			Cheese:        sim.DefaultRewards.Cheese,
			BigCheese:     sim.DefaultRewards.BigCheese,
			CatCollision:  sim.DefaultRewards.CatCollision,
			WallCollision: sim.DefaultRewards.WallCollision,
		},
		Eval: EvalConfig{
			Workers:     0, // NumCPU
			Candidates:  100,
			OutDir:      "data",
			ArchivePath: "data/runs.db",
		},
		Server: ServerConfig{
			Addr:         ":8077",
			MaxBatchSize: 4096,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.Life <= 0 {
		return fmt.Errorf("game.life must be positive, got %d", c.Game.Life)
	}
	if c.Game.StepLimit <= 0 {
		return fmt.Errorf("game.step_limit must be positive, got %d", c.Game.StepLimit)
	}
	if c.Game.RedZone < 0 {
		return fmt.Errorf("game.red_zone must not be negative, got %d", c.Game.RedZone)
	}
	if c.Eval.Workers < 0 {
		return fmt.Errorf("eval.workers must not be negative, got %d", c.Eval.Workers)
	}
	if c.Server.MaxBatchSize <= 0 {
		return fmt.Errorf("server.max_batch_size must be positive, got %d", c.Server.MaxBatchSize)
	}
	return nil
}

// SimRewards converts the reward section for the simulator.
func (c *Config) SimRewards() sim.Rewards {
	return sim.Rewards{
		Cheese:        c.Rewards.Cheese,
		BigCheese:     c.Rewards.BigCheese,
		CatCollision:  c.Rewards.CatCollision,
		WallCollision: c.Rewards.WallCollision,
	}
}

// ApplyGame copies the game section onto a state's run parameters.
func (c *Config) ApplyGame(s *game.State) {
	s.Life = c.Game.Life
	s.StepLimit = c.Game.StepLimit
	s.RedZone = c.Game.RedZone
	s.FuncChance = c.Game.FuncChance
}
