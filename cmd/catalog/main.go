// Command catalog serves the grid and package catalog API.
package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
