package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type flags struct {
	beneficiosAPI string
	authAPI       string
	logPath       string
	httpTimeout   time.Duration
}

func initFlags() (flags, error) {
	// .env é opcional; variáveis de ambiente sempre vencem as flags.
	_ = godotenv.Load()

	beneficiosAPI := flag.String("b", "http://localhost:8000/api/v1/beneficios", "The beneficios API base URL")
	authAPI := flag.String("u", "http://localhost:8000/api/v1/auth/login", "The auth (login) endpoint URL")
	logPath := flag.String("l", "beneficios-console.log", "The log file path")
	httpTimeout := flag.String("t", "30", "The HTTP timeout, in seconds")

	flag.Parse()

	if value := os.Getenv("BENEFICIOS_API"); value != "" {
		beneficiosAPI = &value
	}

	if value := os.Getenv("AUTH_API"); value != "" {
		authAPI = &value
	}

	if value := os.Getenv("LOG_PATH"); value != "" {
		logPath = &value
	}

	timeoutKey := "HTTP_TIMEOUT"
	if value, exist := os.LookupEnv(timeoutKey); exist {
		if value == "" {
			return flags{}, fmt.Errorf("%s environment variable not set", timeoutKey)
		}

		httpTimeout = &value
	}

	timeoutSeconds, err := parseTimeoutValue(*httpTimeout)
	if err != nil {
		return flags{}, err
	}

	return flags{
		beneficiosAPI: *beneficiosAPI,
		authAPI:       *authAPI,
		logPath:       *logPath,
		httpTimeout:   time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func parseTimeoutValue(value string) (int64, error) {
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", value, err)
	}
	if intValue <= 0 {
		return 0, fmt.Errorf("invalid HTTP_TIMEOUT: %s", value)
	}

	return intValue, nil
}
