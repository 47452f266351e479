// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Commerce                `yaml:"commerce"`
	ProfileImage            `yaml:"profile_image"`
	EmailOptIn              `yaml:"email_optin"`
	Survey                  `yaml:"survey"`
	SMTP                    `yaml:"smtp"`
	Analytics               `yaml:"analytics"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis,
// в redis хранится эфемерное состояние сессий пользователей
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"10s"`
	SessionTTL   time.Duration `yaml:"session_ttl" env-default:"24h"`
}

// JWTToken структура для работы с jwt-токеном сессии
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Commerce настройки внешнего e-commerce API. Пустой APIURL или
// SigningKey означает, что API не настроен и покупка записывает
// пользователя на курс напрямую.
type Commerce struct {
	APIURL               string        `yaml:"api_url"`
	SigningKey           string        `yaml:"signing_key"`
	APITimeout           time.Duration `yaml:"api_timeout" env-default:"10s"`
	EnrollOnPendingOrder bool          `yaml:"enroll_on_pending_order" env-default:"true"`
}

// ProfileImage настройки загрузки изображения профиля
type ProfileImage struct {
	MaxBytes    int64  `yaml:"max_bytes" env-default:"2684354560"`
	StorageRoot string `yaml:"storage_root" env-default:"./profile-images"`
}

// EmailOptIn настройки согласия на рассылку
type EmailOptIn struct {
	MinimumAge int `yaml:"minimum_age" env-default:"13"`
}

// Survey настройки выходного опроса
type Survey struct {
	RandomQuestionCount int  `yaml:"random_question_count" env-default:"6"`
	DebugShowAll        bool `yaml:"debug_show_all" env-default:"false"`
}

// SMTP структура для настройки почтового транспорта
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
}

// Analytics настройки подключения к RabbitMQ для событий аналитики.
// Пустая строка подключения отключает отправку событий.
type Analytics struct {
	RabbitConnection string `yaml:"rabbit_connection"`
	Exchange         string `yaml:"exchange" env-default:"analytics"`
	RoutingKey       string `yaml:"routing_key" env-default:"user.events"`
}

// MustLoad функция для загрузки конфига, путь к файлу берётся
// из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
