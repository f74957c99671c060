package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		Addr                      string
		DebugHost                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, dc.Port)
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Meritum")
	v.SetDefault("secretKey", "o0u2gnbq(h!x)#*c2(#yg4h^$cegm2emy+57=dz&uoxh2poq5")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "meritum")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseDisableTLS", true)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:           v.GetBool("debug"),
		TestMode:        env == "TEST",
		Env:             env,
		Build:           v.GetString("build"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Addr:                      v.GetString("serverAddr"),
			DebugHost:                 v.GetString("serverDebugHost"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
	}
}
