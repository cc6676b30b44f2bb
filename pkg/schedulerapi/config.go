package schedulerapi

import "time"

const DefaultBaseURL = "http://localhost:8080/api"

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}
