package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var GConfig *Config

func Init(filePath string) {
	config, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	initFromYaml(config)
	err = GConfig.Verify()
	if err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	err := yaml.Unmarshal(config, &GConfig)
	if err != nil {
		panic(err)
	}
}

type Config struct {
	StorageSupplier string `yaml:"storage_supplier"`
	URLExpires      string `yaml:"url_expires"`

	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`

	Pipeline `yaml:"pipeline"`
	AliOss   `yaml:"ali_oss"`
	Local    `yaml:"local"`
	MySQL    `yaml:"mysql"`
}

func (c *Config) Verify() error {
	if c.StorageSupplier != "ali_oss" && c.StorageSupplier != "local" {
		return fmt.Errorf("storage_supplier must be ali_oss or local")
	}
	if c.URLExpires == "" {
		c.URLExpires = "168h"
	}
	_, err := time.ParseDuration(c.URLExpires)
	if err != nil {
		return err
	}
	if c.LogFile == "" {
		c.LogFile = "media-hub.log"
	}
	return c.Pipeline.verify()
}

// Pipeline holds the ingestion limits. Zero values fall back to the
// reference defaults so a minimal config file still works.
type Pipeline struct {
	MaxUploadBytes int64   `yaml:"max_upload_bytes"`
	TargetBytes    int64   `yaml:"target_bytes"`
	RatioTolerance float64 `yaml:"ratio_tolerance"`
}

const (
	DefaultMaxUploadBytes = 30 << 20
	DefaultTargetBytes    = 5 << 20
	DefaultRatioTolerance = 0.15
)

func (p *Pipeline) verify() error {
	if p.MaxUploadBytes == 0 {
		p.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if p.TargetBytes == 0 {
		p.TargetBytes = DefaultTargetBytes
	}
	if p.RatioTolerance == 0 {
		p.RatioTolerance = DefaultRatioTolerance
	}
	if p.MaxUploadBytes < 0 || p.TargetBytes < 0 {
		return fmt.Errorf("pipeline byte limits must be non-negative")
	}
	if p.RatioTolerance < 0 || p.RatioTolerance >= 1 {
		return fmt.Errorf("ratio_tolerance must be in [0, 1)")
	}
	return nil
}

type AliOss struct {
	AccessKeyId     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Directory       string `yaml:"directory"`        // canonical store prefix
	PublicDirectory string `yaml:"public_directory"` // direct-access mirror prefix
}

type Local struct {
	Directory       string `yaml:"directory"`
	PublicDirectory string `yaml:"public_directory"`
}

type MySQL struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}
