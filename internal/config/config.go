package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Port                  int           `yaml:"port"`
	DataDir               string        `yaml:"data_dir"`
	UploadsDir            string        `yaml:"uploads_dir"`
	AllowedOrigins        []string      `yaml:"allowed_origins"`
	DefaultCommentLimit   int           `yaml:"default_comment_limit"` // page size when the client omits limit
	MaxUploadSizeMB       int64         `yaml:"max_upload_size_mb"`
	MaxImagesPerUpload    int           `yaml:"max_images_per_upload"`
	AllowedImageMimeTypes []string      `yaml:"allowed_image_mime_types"`
	JwtTTL                time.Duration `yaml:"jwt_ttl"`
	LogLevel              string        `yaml:"log_level"`
	LogJSON               bool          `yaml:"log_json"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

// MaxUploadBytes is the multipart memory/size cap derived from config.
func (c *Config) MaxUploadBytes() int64 {
	return c.Public.MaxUploadSizeMB << 20
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.mustValidate()
	return cfg
}

func (c *Config) mustValidate() {
	required := map[string]bool{
		"port":                  c.Public.Port != 0,
		"data_dir":              c.Public.DataDir != "",
		"uploads_dir":           c.Public.UploadsDir != "",
		"default_comment_limit": c.Public.DefaultCommentLimit != 0,
		"max_upload_size_mb":    c.Public.MaxUploadSizeMB != 0,
		"max_images_per_upload": c.Public.MaxImagesPerUpload != 0,
		"jwt_ttl":               c.Public.JwtTTL != 0,
		"jwt_key":               c.private.JwtKey != "",
	}
	for field, ok := range required {
		if !ok {
			panic(fmt.Sprintf("config: required field %q is missing or zero", field))
		}
	}
}
