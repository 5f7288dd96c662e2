package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	Port        string
	AppEnv      string
	AppURL      string
	DeliveryFee string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		Port:        os.Getenv("APP_PORT"),
		AppEnv:      os.Getenv("APP_ENV"),
		AppURL:      os.Getenv("APP_URL"),
		DeliveryFee: os.Getenv("DELIVERY_FEE"),
	}
}

var LoadENV = LoadEnv()

// DeliveryFee returns the flat delivery fee added to every order total.
// An unset or malformed DELIVERY_FEE means free delivery.
func DeliveryFee() decimal.Decimal {
	if LoadENV.DeliveryFee == "" {
		return decimal.Zero
	}
	fee, err := decimal.NewFromString(LoadENV.DeliveryFee)
	if err != nil {
		log.Printf("DeliveryFee: invalid DELIVERY_FEE %q, using 0", LoadENV.DeliveryFee)
		return decimal.Zero
	}
	return fee
}
