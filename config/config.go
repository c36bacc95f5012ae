package config

import (
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	InitData bool   `yaml:"init_data" json:"init_data"`
}

// WebConfig holds HTTP server settings.
type WebConfig struct {
	Host           string   `yaml:"host" json:"host"`
	Port           int      `yaml:"port" json:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// DBConfig holds relational database settings.
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// UploadConfig holds image intake settings.
type UploadConfig struct {
	Dir           string   `yaml:"dir" json:"dir"`
	MaxUploadSize int64    `yaml:"max_upload_size" json:"max_upload_size"`
	AllowedExts   []string `yaml:"allowed_exts" json:"allowed_exts"`
}

// WhatsAppConfig holds messaging provider settings. The dispatcher is
// disabled when ApiURL is empty.
type WhatsAppConfig struct {
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	ApiURL       string `yaml:"api_url" json:"api_url"`
	AccountSid   string `yaml:"account_sid" json:"account_sid"`
	AuthToken    string `yaml:"auth_token" json:"auth_token"`
	From         string `yaml:"from" json:"from"`
	StoreURL     string `yaml:"store_url" json:"store_url"`
	ContactPhone string `yaml:"contact_phone" json:"contact_phone"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Upload   UploadConfig   `yaml:"upload" json:"upload"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp" json:"whatsapp"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "ManthrakodiBridal",
			Location: "Asia/Kolkata",
			Workdir:  "/var/bridalstore",
			InitData: false,
		},
		Web: WebConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		Database: DBConfig{
			Type:     "postgres",
			Host:     "localhost",
			Port:     5432,
			Name:     "mkb-db",
			User:     "mkb-db-user",
			Passwd:   "",
			MaxConn:  100,
			IdleConn: 10,
			Debug:    false,
		},
		Upload: UploadConfig{
			Dir:           "uploads",
			MaxUploadSize: 5 * 1024 * 1024,
			AllowedExts:   []string{".jpg", ".jpeg", ".png", ".webp", ".gif"},
		},
		WhatsApp: WhatsAppConfig{
			Enabled:      false,
			From:         "whatsapp:+14155238886",
			StoreURL:     "https://manthrakodibridals.com",
			ContactPhone: "+91 98765 43210",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/bridalstore/bridalstore.log",
		},
	}
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(strings.TrimSpace(v))
	}
}

// LoadConfig builds the runtime configuration: defaults, then the optional
// YAML file, then environment variable overrides. The env names match the
// legacy deployment (POSTGRES_*, ALLOWED_ORIGINS, UPLOAD_DIR ...).
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BRIDALSTORE_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvValue("BRIDALSTORE_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("BRIDALSTORE_INIT_DATA", func(v string) { cfg.System.InitData = cast.ToBool(v) })

	setEnvValue("WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("ALLOWED_ORIGINS", func(v string) { cfg.Web.AllowedOrigins = splitOrigins(v) })

	setEnvValue("DATABASE_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("POSTGRES_SERVER", func(v string) { cfg.Database.Host = v })
	setEnvValue("POSTGRES_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("POSTGRES_DB", func(v string) { cfg.Database.Name = v })
	setEnvValue("POSTGRES_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("POSTGRES_PASSWORD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("DATABASE_DEBUG", func(v string) { cfg.Database.Debug = cast.ToBool(v) })

	setEnvValue("UPLOAD_DIR", func(v string) { cfg.Upload.Dir = v })
	setEnvValue("MAX_UPLOAD_SIZE", func(v string) { cfg.Upload.MaxUploadSize = cast.ToInt64(v) })

	setEnvValue("WHATSAPP_ENABLED", func(v string) { cfg.WhatsApp.Enabled = cast.ToBool(v) })
	setEnvValue("WHATSAPP_API_URL", func(v string) { cfg.WhatsApp.ApiURL = v })
	setEnvValue("TWILIO_ACCOUNT_SID", func(v string) { cfg.WhatsApp.AccountSid = v })
	setEnvValue("TWILIO_AUTH_TOKEN", func(v string) { cfg.WhatsApp.AuthToken = v })
	setEnvValue("TWILIO_WHATSAPP_NUMBER", func(v string) { cfg.WhatsApp.From = v })

	setEnvValue("LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("LOGGER_FILE_ENABLE", func(v string) { cfg.Logger.FileEnable = cast.ToBool(v) })
	setEnvValue("LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	return cfg
}

// splitOrigins parses a comma separated origin list, tolerating the
// bracketed/quoted form the legacy deployment used.
func splitOrigins(v string) []string {
	v = strings.Trim(v, "[]")
	var origins []string
	for _, part := range strings.Split(v, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
