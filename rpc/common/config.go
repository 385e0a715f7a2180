package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Formatting helpers (shared by all String methods)
// --------------------------------------------------------------------------

type configPrinter struct {
	sb strings.Builder
}

func (p *configPrinter) section(title string) {
	p.sb.WriteString("\n")
	p.sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
}

func (p *configPrinter) field(name, value string) {
	p.sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
}

// --------------------------------------------------------------------------
// Remote client configuration struct
// --------------------------------------------------------------------------

// ClientConfig configures the remote feedback service client.
type ClientConfig struct {
	// Endpoints of the service, used round-robin. Empty disables the remote side.
	Endpoints []string
	// TimeoutSecond bounds a single HTTP request (0 = no timeout)
	TimeoutSecond int
	// Attempts is the number of transport attempts per request (<= 1 means no retry)
	Attempts int
}

// Enabled reports whether a remote endpoint is configured
func (c *ClientConfig) Enabled() bool {
	for _, e := range c.Endpoints {
		if strings.TrimSpace(e) != "" {
			return true
		}
	}
	return false
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	p := &configPrinter{}

	p.section("Remote Client")
	p.field("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	p.field("Attempts", strconv.Itoa(max(1, c.Attempts)))

	p.section("Endpoints")
	if !c.Enabled() {
		p.field("-", "disabled (local only)")
	}
	for i, endpoint := range c.Endpoints {
		p.field(strconv.Itoa(i), endpoint)
	}
	return p.sb.String()
}

// --------------------------------------------------------------------------
// Store (facade) configuration struct
// --------------------------------------------------------------------------

// StoreConfig configures the local side of the feedback store.
type StoreConfig struct {
	// Source is the client tag written into new entries
	Source string

	// Local durable cache
	LocalBackend string // file, memory, redis
	DataDir      string // file backend directory
	RedisAddr    string
	RedisDB      int
	Serializer   string // json, gob

	// Sync cache staleness bound
	CacheTTL time.Duration

	// Background write policy
	SyncPolicy   string // none, retry, breaker
	SyncAttempts int

	Client ClientConfig
}

// String returns a formatted string representation of the store configuration
func (c *StoreConfig) String() string {
	p := &configPrinter{}

	p.section("Feedback Store")
	p.field("Source Tag", c.Source)
	p.field("Sync Cache TTL", c.CacheTTL.String())
	p.field("Sync Policy", c.SyncPolicy)
	if c.SyncPolicy != "none" {
		p.field("Sync Attempts", strconv.Itoa(c.SyncAttempts))
	}

	p.section("Local Cache")
	p.field("Backend", c.LocalBackend)
	p.field("Serializer", c.Serializer)
	switch c.LocalBackend {
	case "file":
		p.field("Data Directory", c.DataDir)
	case "redis":
		p.field("Redis Address", c.RedisAddr)
		p.field("Redis DB", strconv.Itoa(c.RedisDB))
	}

	return p.sb.String() + c.Client.String()
}

// --------------------------------------------------------------------------
// Service configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the reference feedback service.
type ServerConfig struct {
	// HTTP api settings
	Endpoint       string // listen address, e.g. 0.0.0.0:8080
	Path           string // route of the feedback resource, e.g. /feedback
	AllowedOrigins []string

	// Row storage
	RowStore string // memory, sqlite
	DataDir  string

	// Default client tag for rows appended without a source
	DefaultSource string

	// Interval of the request timer log (0 disables it)
	StatsInterval time.Duration

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	p := &configPrinter{}

	p.section("Feedback Service")
	p.field("Endpoint", c.Endpoint)
	p.field("Path", c.Path)
	p.field("Allowed Origins", strings.Join(c.AllowedOrigins, ","))
	p.field("Default Source", c.DefaultSource)

	p.section("Storage")
	p.field("Row Store", c.RowStore)
	if c.RowStore == "sqlite" {
		p.field("Data Directory", c.DataDir)
	}

	p.section("Logging")
	p.field("Log Level", c.LogLevel)
	p.field("Stats Interval", c.StatsInterval.String())

	return p.sb.String()
}
