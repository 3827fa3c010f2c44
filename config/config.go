package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort             string
	MetricsPort             string
	Environment             string
	PostgreSQLConfig        PostgreSQLConfig
	KafkaConfig             KafkaConfig
	RedisConfig             RedisConfig
	PaypalConfig            PaypalConfig
	MidtransConfig          MidtransConfig
	DefaultGateway          string
	SubscriptionServiceHost string
	TracingConfig           TracingConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	Database int
}

type PaypalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	ReturnURL    string
	CancelURL    string
}

type MidtransConfig struct {
	ServerKey string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	brokerPartition, _ := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	redisDatabase, _ := strconv.Atoi(os.Getenv("REDIS_DATABASE"))

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: brokerPartition,
		},
		RedisConfig: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Database: redisDatabase,
		},
		PaypalConfig: PaypalConfig{
			BaseURL:      os.Getenv("PAYPAL_BASE_URL"),
			ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
			ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
			ReturnURL:    os.Getenv("PAYPAL_ORDER_RETURN_URL"),
			CancelURL:    os.Getenv("PAYPAL_ORDER_CANCEL_URL"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		},
		DefaultGateway:          os.Getenv("DEFAULT_PAYMENT_GATEWAY"),
		SubscriptionServiceHost: os.Getenv("SUBSCRIPTION_SERVICE_HOST"),
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	if conf.DefaultGateway == "" {
		conf.DefaultGateway = "paypal"
	}

	return &conf
}
