package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Env struct {
	APIKey   string `env:"API_KEY"`
	Model    string `env:"GRAVDECK_MODEL"`
	Endpoint string `env:"GRAVDECK_ENDPOINT"`
}

func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// APIKey reads the generation service key from the environment. It is
// called once per request so a key exported mid-session is picked up.
func APIKey() (string, error) {
	e, err := ParseEnv()
	if err != nil {
		return "", err
	}
	return e.APIKey, nil
}
