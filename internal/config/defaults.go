package config

import "github.com/knadh/koanf/providers/confmap"

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"http": map[string]interface{}{
			"addr":         ":8080",
			"cors_origins": "http://localhost:5173",
			"release_mode": false,
		},
		"database": map[string]interface{}{
			"url":       "household_hub.db",
			"log_level": "warn",
		},
		"reminders": map[string]interface{}{
			"window_days":    7,
			"lookahead_days": 30,
			"timezone":       "Local",
		},
		"scheduler": map[string]interface{}{
			"enabled":   true,
			"sync_at":   "06:00",
			"digest_at": "08:00",
		},
		"telegram": map[string]interface{}{
			"token": "",
		},
		"email": map[string]interface{}{
			"sendgrid_api_key": "",
			"from_email":       "",
			"from_name":        "Household Hub",
			"recipients":       "",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
