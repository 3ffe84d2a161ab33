package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spendwise/spendwise/cmd"
	log "github.com/sirupsen/logrus"
)

func init() {
	// .env is optional; it only helps local development
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cmd.Execute()
}
