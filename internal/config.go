package internal

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	Logger     log.Logger
	Registerer prometheus.Registerer
}

func DefaultConfig() *Config {
	return &Config{
		Logger:     log.NewNopLogger(),
		Registerer: nil,
	}
}
