package util

import (
	"github.com/badnest/badnest2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Nest: config.NestConfig{
			UserID:      "test-user",
			AccessToken: "test-token",
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "badnest",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		Services: config.ServicesConfig{
			ManifestPath:        "services.yaml",
			TranslationsPath:    "translations/en.json",
			DefaultBoostMinutes: 30,
		},
		Port: 8080,
	}
}
