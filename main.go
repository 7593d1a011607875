package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/mucyuneje/asamfxproduction/cmd/app"
)

// @title        ASAM FX production API
// @version      1.0
// @description  Video lessons and kits unlocked by admin approved payments.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
