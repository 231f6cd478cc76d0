/*
Copyright © 2025 adityapawar327
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/adityapawar327/ongc-assistant-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}
