package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// envFiles lists the dotenv files consulted before the configuration is read.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every dotenv file that exists. Variables already present in the
// process environment win. It returns the files that were loaded.
func loadEnvFiles() ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, err
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}
