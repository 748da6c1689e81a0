/*
Copyright © 2025 medicare-vn
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/medicare-vn/medicare-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// Credentials may come from the environment directly, a missing
	// .env file is not fatal.
	godotenv.Load()
}
