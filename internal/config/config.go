package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"5000"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	StreamAPIKey    string `env:"STREAM_API_KEY,required"`
	StreamAPISecret string `env:"STREAM_API_SECRET,required"`
	LLMAPIKey       string `env:"LLM_API_KEY,required"`
	LLMBaseURL      string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// LoadConfig carga la configuración desde variables de entorno.
// Falla si alguna variable requerida está ausente.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
