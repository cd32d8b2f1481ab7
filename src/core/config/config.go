package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// SetupEnv loads variables from a local .env file. A missing file is fine
// in deployed environments where everything comes from the process env.
func SetupEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// Config returns the environment variable or defaults to empty string
func Config(key string) string {
	return os.Getenv(key)
}
