package main

import (
	"os"

	"gopkg.in/yaml.v2"
	"twocardpoker-server/internal/config"
	"twocardpoker-server/pkg/token"
)

func main() {
	cfg := config.DefaultConfig()

	secret, err := token.Generate(32)
	if err != nil {
		panic(err)
	}
	cfg.AdminSecret = secret

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		panic(err)
	}
}
