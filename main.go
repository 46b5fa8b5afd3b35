/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/docstudy-be/cmd"
)

func main() {
	// .env is optional; secrets may come from the environment directly.
	godotenv.Load()
	cmd.Execute()
}
