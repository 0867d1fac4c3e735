package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Nest     NestConfig `mapstructure:"nest"`
	MQTT     MQTTConfig `mapstructure:"mqtt"`

	MonitorConfig MonitorConfig  `mapstructure:"monitor"`
	Services      ServicesConfig `mapstructure:"services"`
	Port          uint           `mapstructure:"port"`
	HttpLog       bool           `mapstructure:"http_log"`
}

type NestConfig struct {
	UserID      string `mapstructure:"user_id"`
	AccessToken string `mapstructure:"access_token"`
	IssueToken  string `mapstructure:"issue_token"`
	Cookie      string `mapstructure:"cookie"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

type ServicesConfig struct {
	ManifestPath        string `mapstructure:"manifest_path"`
	TranslationsPath    string `mapstructure:"translations_path"`
	DefaultBoostMinutes int    `mapstructure:"default_boost_minutes"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
