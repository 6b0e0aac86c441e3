package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/IARD-Solutions/solidity-analyzer/cmd"
)

func main() {
	// pick up SOLIDITY_ANALYZER_* variables from a local .env file
	_ = godotenv.Load()

	code := cmd.Execute()
	os.Exit(code)
}
