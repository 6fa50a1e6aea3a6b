package config

import (
	"strconv"
	"time"
)

type Judge0Config struct {
	BaseURL        string
	APIKey         string
	APIHost        string
	RequestTimeout time.Duration
}

// NewJudge0Config reads the execution backend settings. APIKey and APIHost
// are only needed for hosted (RapidAPI) instances.
func NewJudge0Config() *Judge0Config {
	timeoutSec, err := strconv.Atoi(getEnv("JUDGE0_TIMEOUT_SEC", "30"))
	if err != nil {
		timeoutSec = 30
	}
	return &Judge0Config{
		BaseURL:        getEnv("JUDGE0_BASE_URL", "https://ce.judge0.com"),
		APIKey:         getEnv("JUDGE0_API_KEY", ""),
		APIHost:        getEnv("JUDGE0_API_HOST", ""),
		RequestTimeout: time.Duration(timeoutSec) * time.Second,
	}
}
