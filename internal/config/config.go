// Package config loads runtime settings from defaults, an optional
// deliciously.yaml, and DELICIOUSLY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// DELICIOUSLY_STORAGE_DRIVER=sqlite.
const EnvPrefix = "DELICIOUSLY"

// Config keys.
const (
	KeyStorageDriver = "storage.driver"
	KeyStoragePath   = "storage.path"

	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"

	KeyBlobDriver      = "blob.driver"
	KeyBlobRoot        = "blob.root"
	KeyS3Bucket        = "blob.s3.bucket"
	KeyS3Region        = "blob.s3.region"
	KeyS3Endpoint      = "blob.s3.endpoint"
	KeyS3PathStyle     = "blob.s3.path-style"
	KeyS3AccessKey     = "blob.s3.access-key-id"
	KeyS3SecretKey     = "blob.s3.secret-access-key"
	KeyExportPoolSize  = "export.pool-size"
	KeyHTTPAddr        = "http.addr"
	KeyInitialFragment = "route"
)

// Config is the decoded settings tree.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	Blob    BlobConfig
	Export  ExportConfig
	HTTP    HTTPConfig
	Route   string // initial location fragment
}

type StorageConfig struct {
	Driver string // memory | bolt | sqlite
	Path   string
}

type LogConfig struct {
	Level string // off | normal | verbose
	File  string // "stderr" logs to the console
}

type BlobConfig struct {
	Driver string // fs | memory | s3
	Root   string
	S3     S3Config
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

type ExportConfig struct {
	PoolSize int
}

type HTTPConfig struct {
	Addr string
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageDriver, "bolt")
	v.SetDefault(KeyStoragePath, filepath.Join(".deliciously", "catalog.db"))
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, filepath.Join(".deliciously", "logs", "deliciously.log"))
	v.SetDefault(KeyBlobDriver, "fs")
	v.SetDefault(KeyBlobRoot, "exports")
	v.SetDefault(KeyS3Region, "us-east-1")
	v.SetDefault(KeyS3PathStyle, false)
	v.SetDefault(KeyExportPoolSize, 4)
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyInitialFragment, "/")
}

// New builds a viper instance with defaults, environment binding and the
// config file at path. An empty path looks for deliciously.yaml in the
// working directory; a missing default file is not an error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("deliciously")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Decode reads every key from v.
func Decode(v *viper.Viper) Config {
	return Config{
		Storage: StorageConfig{
			Driver: v.GetString(KeyStorageDriver),
			Path:   v.GetString(KeyStoragePath),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		Blob: BlobConfig{
			Driver: v.GetString(KeyBlobDriver),
			Root:   v.GetString(KeyBlobRoot),
			S3: S3Config{
				Bucket:          v.GetString(KeyS3Bucket),
				Region:          v.GetString(KeyS3Region),
				Endpoint:        v.GetString(KeyS3Endpoint),
				PathStyle:       v.GetBool(KeyS3PathStyle),
				AccessKeyID:     v.GetString(KeyS3AccessKey),
				SecretAccessKey: v.GetString(KeyS3SecretKey),
			},
		},
		Export: ExportConfig{PoolSize: v.GetInt(KeyExportPoolSize)},
		HTTP:   HTTPConfig{Addr: v.GetString(KeyHTTPAddr)},
		Route:  v.GetString(KeyInitialFragment),
	}
}

// Load is New followed by Decode.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(v), nil
}
