package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Payment  Payment
	Email    Email

	StripeApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWT struct {
	Secret     string
	TTLMinutes int
}

type Payment struct {
	SuccessURL string
	Currency   string
}

type Email struct {
	SendgridApiKey string
	FromAddress    string
	AppName        string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_TTL_MINUTES", 60)
	viper.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:8080/success")
	viper.SetDefault("PAYMENT_CURRENCY", "rub")
	viper.SetDefault("EMAIL_APP_NAME", "Learnora")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.TTLMinutes = viper.GetInt("JWT_TTL_MINUTES")

	config.StripeApiKey = viper.GetString("STRIPE_API_KEY")
	config.Payment.SuccessURL = viper.GetString("PAYMENT_SUCCESS_URL")
	config.Payment.Currency = viper.GetString("PAYMENT_CURRENCY")

	config.Email.SendgridApiKey = viper.GetString("SENDGRID_API_KEY")
	config.Email.FromAddress = viper.GetString("EMAIL_FROM_ADDRESS")
	config.Email.AppName = viper.GetString("EMAIL_APP_NAME")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
