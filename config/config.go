package config

import (
	"arkiv/file_io"
	L "arkiv/logger"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Progress struct {
	StatusIntervalMs   int64   `json:"status_interval_ms"`
	EtaIntervalMs      int64   `json:"eta_interval_ms"`
	MinSampleMs        int64   `json:"min_sample_ms"`
	MaxSampleMs        int64   `json:"max_sample_ms"`
	Smoothing          float64 `json:"smoothing"`
	MinSecondsPerEntry float64 `json:"min_seconds_per_entry"`
	MaxSecondsPerEntry float64 `json:"max_seconds_per_entry"`
	WarmupEntries      uint64  `json:"warmup_entries"`
}

func (p Progress) StatusInterval() time.Duration {
	return time.Duration(p.StatusIntervalMs) * time.Millisecond
}

func (p Progress) EtaInterval() time.Duration {
	return time.Duration(p.EtaIntervalMs) * time.Millisecond
}

func (p Progress) MinSample() time.Duration {
	return time.Duration(p.MinSampleMs) * time.Millisecond
}

func (p Progress) MaxSample() time.Duration {
	return time.Duration(p.MaxSampleMs) * time.Millisecond
}

type Config struct {
	ArchiveFormats   []ArchiveFormat `json:"archive_formats"`
	PipelineMode     PipelineMode    `json:"pipeline_mode"`
	Workers          int             `json:"workers"`
	QueueSize        int             `json:"queue_size"`
	CompressionLevel int             `json:"compression_level"`
	UI               UIMode          `json:"ui"`
	Catalog          bool            `json:"catalog"`
	Progress         Progress        `json:"progress"`
}

var config = Default()
var configPath string

// Default returns the configuration used when no config file sets a key.
func Default() Config {
	return Config{
		ArchiveFormats:   []ArchiveFormat{AF_TARGZ},
		PipelineMode:     PIPELINE_FANOUT,
		Workers:          0,
		QueueSize:        64,
		CompressionLevel: 0,
		UI:               UI_AUTO,
		Catalog:          true,
		Progress: Progress{
			StatusIntervalMs:   300,
			EtaIntervalMs:      1000,
			MinSampleMs:        10,
			MaxSampleMs:        30000,
			Smoothing:          0.2,
			MinSecondsPerEntry: 0.005,
			MaxSecondsPerEntry: 60.0,
			WarmupEntries:      10,
		},
	}
}

func Parse(configPathArg string) error {
	file, err := os.Open(configPathArg)
	if err != nil {
		return fmt.Errorf("config: could not open config file for reading: %w", err)
	}
	defer file.Close()
	parsed := Default()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	err = decoder.Decode(&parsed)
	if err != nil {
		return fmt.Errorf("config: malformed config %s: %w", configPathArg, err)
	}
	err = validate(&parsed)
	if err != nil {
		return fmt.Errorf("config: could not validate config: %w", err)
	}

	absPath, err := filepath.Abs(configPathArg)
	if err != nil {
		return err
	}
	config = parsed
	configPath = absPath
	return nil
}

func Get() *Config {
	return &config
}

func GetDefaultConfigDir() (string, error) {
	configDir, configDirError := os.UserConfigDir()
	homeDir, homeDirError := os.UserHomeDir()
	if configDirError != nil && homeDirError != nil {
		return "", fmt.Errorf("config: cannot find config dir: Config: %w, Home: %w", configDirError, homeDirError)
	}
	var dir string
	if configDirError == nil {
		dir = configDir
	} else {
		dir = homeDir
	}
	dir, err := filepath.Abs(filepath.Join(dir, "arkiv"))
	if err != nil {
		return "", err
	}
	L.Debug(fmt.Sprintf("Using config directory: %s", dir))
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return dir, nil
}

func GetDefaultConfigPath() (string, error) {
	configDir, err := GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	configFilePath := filepath.Join(configDir, "config.json")
	if !file_io.Exists(configFilePath) {
		_, err = file_io.WriteToFile(configFilePath, []byte(DumpDefaultConfig()), file_io.WRITE_OVERWRITE)
	}
	if err != nil {
		return "", err
	}
	return configFilePath, err
}

func GetConfigPath() string {
	return configPath
}

func (c *Config) ToJson() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func DumpDefaultConfig() string {
	defaultConfig := Default()
	configStr, err := defaultConfig.ToJson()
	if err != nil {
		return ""
	}
	return configStr
}

func validate(c *Config) error {
	if len(c.ArchiveFormats) == 0 {
		return fmt.Errorf("archive_formats must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue_size must be >= 0, got %d", c.QueueSize)
	}
	if c.CompressionLevel < 0 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression_level must be between 0 and 9, got %d", c.CompressionLevel)
	}
	p := c.Progress
	if p.StatusIntervalMs <= 0 || p.EtaIntervalMs <= 0 {
		return fmt.Errorf("progress intervals must be positive")
	}
	if p.MinSampleMs < 0 || p.MaxSampleMs <= p.MinSampleMs {
		return fmt.Errorf("progress.max_sample_ms must be greater than progress.min_sample_ms")
	}
	if p.Smoothing <= 0 || p.Smoothing > 1 {
		return fmt.Errorf("progress.smoothing must be in (0, 1], got %v", p.Smoothing)
	}
	if p.MinSecondsPerEntry <= 0 || p.MaxSecondsPerEntry < p.MinSecondsPerEntry {
		return fmt.Errorf("progress.min_seconds_per_entry must be positive and not above progress.max_seconds_per_entry")
	}
	return nil
}
