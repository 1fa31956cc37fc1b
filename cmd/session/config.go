package main

import "time"

type Config struct {
	BadgerFilepath          string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel                string        `env:"LOG_LEVEL,required=true"`
	Username                string        `env:"CHAT_USERNAME,required=true"`
	DisplayName             string        `env:"CHAT_DISPLAY_NAME"`
	HistoryLimit            int           `env:"HISTORY_LIMIT,default=50"`
	LimitEntries            *int          `env:"LIMIT_ENTRIES"`
	RestartInterval         time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	TransportEndpoint       string        `env:"TRANSPORT_ENDPOINT"`
	TransportRedialInterval time.Duration `env:"TRANSPORT_REDIAL_INTERVAL,default=2s"`
	TransportDialTimeout    time.Duration `env:"TRANSPORT_DIAL_TIMEOUT,default=10s"`
}
