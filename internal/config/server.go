package config

import "strconv"

type ServerConfig struct {
	Port        int
	ServiceName string
}

func NewServerConfig() *ServerConfig {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8082"))
	if err != nil {
		port = 8082
	}
	return &ServerConfig{
		Port:        port,
		ServiceName: getEnv("SERVICE_NAME", "judgeEngine"),
	}
}
