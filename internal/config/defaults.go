package config

import "time"

const defaultPort = 8080

const defaultLogLevel = "info"

var defaultDB = DB{
	Host:           "127.0.0.1",
	Port:           "5432",
	User:           "myuser",
	Pass:           "mypassword",
	Name:           "test_db",
	SSLMode:        "disable",
	ConnectRetries: 10,
	TxAttempts:     3,
}

var defaultService = Service{
	OperationTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	RPS:   20,
	Burst: 40,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultService returns the default service settings.
func DefaultService() Service {
	return defaultService
}

// DefaultRateLimit returns the default write rate limit.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
