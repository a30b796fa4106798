package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	JWT           JWTConfig
	Lockout       LockoutConfig
	RecoveryToken RecoveryTokenConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	AccessExpiry      time.Duration
	RefreshExpiry     time.Duration
	LongRefreshExpiry time.Duration // used when remember_me is set
}

type LockoutConfig struct {
	MaxFailedLogins int
	LockDuration    time.Duration
}

type RecoveryTokenConfig struct {
	PasswordResetTTL     time.Duration
	EmailVerificationTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_ISSUER", "shopstack")
	viper.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_LONG_REFRESH_EXPIRY_HOURS", 720)
	viper.SetDefault("LOCKOUT_MAX_FAILED_LOGINS", 5)
	viper.SetDefault("LOCKOUT_DURATION_MINUTES", 60)
	viper.SetDefault("RESET_TOKEN_TTL_HOURS", 2)
	viper.SetDefault("VERIFY_TOKEN_TTL_HOURS", 168)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:            viper.GetString("JWT_SECRET"),
			Issuer:            viper.GetString("JWT_ISSUER"),
			AccessExpiry:      time.Duration(viper.GetInt("JWT_ACCESS_EXPIRY_MINUTES")) * time.Minute,
			RefreshExpiry:     time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
			LongRefreshExpiry: time.Duration(viper.GetInt("JWT_LONG_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Lockout: LockoutConfig{
			MaxFailedLogins: viper.GetInt("LOCKOUT_MAX_FAILED_LOGINS"),
			LockDuration:    time.Duration(viper.GetInt("LOCKOUT_DURATION_MINUTES")) * time.Minute,
		},
		RecoveryToken: RecoveryTokenConfig{
			PasswordResetTTL:     time.Duration(viper.GetInt("RESET_TOKEN_TTL_HOURS")) * time.Hour,
			EmailVerificationTTL: time.Duration(viper.GetInt("VERIFY_TOKEN_TTL_HOURS")) * time.Hour,
		},
	}

	return config, nil
}
