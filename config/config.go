package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	DBHost             string `mapstructure:"DB_HOST"`
	DBPort             string `mapstructure:"DB_PORT"`
	DBUser             string `mapstructure:"DB_USER"`
	DBPassword         string `mapstructure:"DB_PASSWORD"`
	DBName             string `mapstructure:"DB_NAME"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	HTTPPort           string `mapstructure:"HTTP_PORT"`
	AccessSecret       string `mapstructure:"ACCESS_SECRET"`
	TranslateURL       string `mapstructure:"TRANSLATE_URL"`
	TranslateAPIKey    string `mapstructure:"TRANSLATE_API_KEY"`
	TranslateTimeoutMS int    `mapstructure:"TRANSLATE_TIMEOUT_MS"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// Явно биндим переменные, чтобы Viper их видел без файла
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("HTTP_PORT")
	viper.BindEnv("ACCESS_SECRET")
	viper.BindEnv("TRANSLATE_URL")
	viper.BindEnv("TRANSLATE_API_KEY")
	viper.BindEnv("TRANSLATE_TIMEOUT_MS")

	viper.SetDefault("HTTP_PORT", ":8080")
	viper.SetDefault("TRANSLATE_URL", "https://translation.googleapis.com/language/translate/v2")
	viper.SetDefault("TRANSLATE_TIMEOUT_MS", 5000)

	// Пытаемся прочитать файл, но не умираем, если его нет
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Файла нет — работаем на ENV
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
