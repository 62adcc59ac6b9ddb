package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/energydiagram/pkg/cache"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// Configuration keys. Nested layout keys map to ENERGYDIAGRAM_LAYOUT_*.
const (
	keyConfig        = "config"
	keyVerbose       = "verbose"
	keyCacheBackend  = "cache-backend"
	keyCacheDir      = "cache-dir"
	keyRedisAddr     = "redis-addr"
	keyRedisPassword = "redis-password"
	keyRedisDB       = "redis-db"
	keyAddr          = "addr"
	keyStyle         = "style"
	keySeed          = "seed"

	keyLevelWidth       = "layout.level_width"
	keySpace            = "layout.space"
	keyVerticalOffset   = "layout.vertical_offset"
	keyHorizontalOffset = "layout.horizontal_offset"
	keyLinkEndOffset    = "layout.link_end_offset"
	keyLinkBeginOffset  = "layout.link_begin_offset"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

const (
	defaultAddr      = "127.0.0.1:8080"
	defaultRedisAddr = "127.0.0.1:6379"
)

// newConfig returns a viper instance with defaults and environment binding.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ENERGYDIAGRAM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyVerbose, false)
	v.SetDefault(keyCacheBackend, backendFile)
	v.SetDefault(keyCacheDir, "")
	v.SetDefault(keyRedisAddr, defaultRedisAddr)
	v.SetDefault(keyRedisPassword, "")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyAddr, defaultAddr)
	v.SetDefault(keyStyle, pipeline.DefaultStyle)
	v.SetDefault(keySeed, pipeline.DefaultSeed)
	// Offsets have no default so that IsSet tells an explicit 0 apart.
	for _, k := range []string{keyLevelWidth, keySpace, keyLinkEndOffset, keyLinkBeginOffset} {
		v.SetDefault(k, 0.0)
	}
	return v
}

// readConfig loads the file named by --config, or .energydiagram.yaml from
// the working directory or $HOME. A missing default file is not an error.
func readConfig(v *viper.Viper) error {
	if file := v.GetString(keyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("." + appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func validateBackend(b string) error {
	switch b {
	case backendFile, backendRedis, backendNone:
		return nil
	}
	return fmt.Errorf("invalid cache backend: %s (must be 'file', 'redis' or 'none')", b)
}

func redisOptions(v *viper.Viper) cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     v.GetString(keyRedisAddr),
		Password: v.GetString(keyRedisPassword),
		DB:       v.GetInt(keyRedisDB),
		Prefix:   cache.DefaultRedisPrefix,
	}
}

// applyLayoutConfig fills layout constants the document leaves unset from
// the configuration. A configured label offset of 0 is kept as "no gap".
func applyLayoutConfig(v *viper.Viper, doc *docio.Document) {
	fill := func(dst *float64, key string) {
		if *dst == 0 {
			if x := v.GetFloat64(key); x > 0 {
				*dst = x
			}
		}
	}
	fillOffset := func(dst **float64, key string) {
		if *dst == nil && v.IsSet(key) {
			if x := v.GetFloat64(key); x >= 0 {
				*dst = &x
			}
		}
	}
	c := &doc.Config
	fill(&c.LevelWidth, keyLevelWidth)
	fill(&c.Space, keySpace)
	fillOffset(&c.VerticalOffset, keyVerticalOffset)
	fillOffset(&c.HorizontalOffset, keyHorizontalOffset)
	fill(&c.LinkEndOffset, keyLinkEndOffset)
	fill(&c.LinkBeginOffset, keyLinkBeginOffset)
}
