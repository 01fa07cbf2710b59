package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

// NotifyConfig points the order submission workflow at the notification
// endpoint. The default targets the endpoint served by this process.
type NotifyConfig struct {
	URL     string `yaml:"url" json:"url"`
	Timeout int    `yaml:"timeout" json:"timeout"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Notify   NotifyConfig `yaml:"notify" json:"notify"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "FishHub",
		Location: "Asia/Jakarta",
		Workdir:  "/var/fishhub",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-fishhub-1816-af02-0f6bd1ffd05d",
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "fishhub",
		User:   "postgres",
		Passwd: "fishhub",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/fishhub/fishhub.log",
	},
	Smtp: SmtpConfig{
		Host: "",
		Port: 587,
		From: "FishHub Orders <orders@fishhub.local>",
		To:   "orders@fishhub.local",
	},
	Notify: NotifyConfig{
		URL:     "http://127.0.0.1:1816/api/notify/order",
		Timeout: 10,
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the YAML configuration file and applies FISHHUB_*
// environment overrides. A missing file falls back to defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("FISHHUB_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("FISHHUB_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })
	setEnvValue("FISHHUB_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("FISHHUB_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("FISHHUB_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("FISHHUB_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("FISHHUB_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("FISHHUB_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("FISHHUB_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("FISHHUB_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("FISHHUB_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("FISHHUB_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvIntValue("FISHHUB_SMTP_PORT", func(v int) { cfg.Smtp.Port = v })
	setEnvValue("FISHHUB_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("FISHHUB_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("FISHHUB_SMTP_TO", func(v string) { cfg.Smtp.To = v })
	setEnvValue("FISHHUB_NOTIFY_URL", func(v string) { cfg.Notify.URL = v })

	// workdir must exist before the logger and metrics open files in it
	_ = os.MkdirAll(cfg.System.Workdir, 0755)
	_ = os.MkdirAll(filepath.Join(cfg.System.Workdir, "data"), 0755)

	return cfg
}
