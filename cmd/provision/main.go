// Command provision creates the default admin and security accounts. It is
// idempotent and meant to be run explicitly at deployment time; the server
// never provisions accounts on startup.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/campus-watch/api-go/config"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := config.ValidateDatabaseConfig(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db := config.InitDB()

	if err := config.EnsureDefaultAccounts(db); err != nil {
		log.Fatal("Provisioning failed: ", err)
	}

	log.Println("Provisioning complete")
}
