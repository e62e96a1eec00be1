package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	Almanac AlmanacConfig

	RedisAddr            string `env:"REDIS_ADDR"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`
	ChartCacheTTLMinutes int    `env:"CHART_CACHE_TTL_MINUTES" envDefault:"1440"`

	JWTSecret           string            `env:"JWT_SECRET"`
	JWTIssuer           string            `env:"JWT_ISSUER" envDefault:"saju-api"`
	JWTAccessTTLMinutes int               `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	APIClients          map[string]string `env:"API_CLIENTS" envSeparator:"," envKeyValSeparator:":"`
	AuthRequired        bool              `env:"AUTH_REQUIRED" envDefault:"true"`
}

// AlmanacConfig define el rango moderno servido por la tabla de términos.
type AlmanacConfig struct {
	TablePath string `env:"ALMANAC_TABLE_PATH"`
	TableFrom int    `env:"ALMANAC_TABLE_FROM" envDefault:"1900"`
	TableTo   int    `env:"ALMANAC_TABLE_TO" envDefault:"2050"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar.
func (c *Config) Validate() error {
	if err := c.Almanac.Validate(); err != nil {
		return err
	}
	if c.AuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is true")
	}
	return nil
}

// LoadAlmanacConfig carga solo la parte del almanaque, para herramientas sin servidor.
func LoadAlmanacConfig() (*AlmanacConfig, error) {
	var cfg AlmanacConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AlmanacConfig) Validate() error {
	if c.TableFrom > c.TableTo {
		return fmt.Errorf("ALMANAC_TABLE_FROM (%d) is after ALMANAC_TABLE_TO (%d)", c.TableFrom, c.TableTo)
	}
	return nil
}
