package config

import "time"

// Config holds settings for the relay, the demo gateway and the clients.
type Config struct {
	// Relay server
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	BackendBase       string        `mapstructure:"backend_base" yaml:"backend_base"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Demo gateway
	GatewayAddr  string        `mapstructure:"gateway_addr" yaml:"gateway_addr"`
	DatabasePath string        `mapstructure:"database_path" yaml:"database_path"`
	PeerTTL      time.Duration `mapstructure:"peer_ttl" yaml:"peer_ttl"`

	// Polling clients
	RelayBase      string        `mapstructure:"relay_base" yaml:"relay_base"`
	PollInterval   time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	KeyFile        string        `mapstructure:"key_file" yaml:"key_file"`
	Nickname       string        `mapstructure:"nickname" yaml:"nickname"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		BackendBase:       "http://127.0.0.1:9000",
		StaticDir:         "",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,

		GatewayAddr:  ":9000",
		DatabasePath: "",
		PeerTTL:      15 * time.Second,

		RelayBase:      "http://127.0.0.1:8080",
		PollInterval:   2500 * time.Millisecond,
		RequestTimeout: 10 * time.Second,
		KeyFile:        "",
		Nickname:       "Anonymous",

		LogLevel: "info",
	}
}
