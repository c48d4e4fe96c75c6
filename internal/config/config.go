package config

import (
	"fmt"
	"os"
	"strings"
)

// Default configuration values (production)
const (
	DefaultDomain   = "mockinterview.fly.dev"
	DefaultSTUN     = "stun:stun.l.google.com:19302"
	DefaultTURN     = ""
	DefaultTURNUser = ""
	DefaultTURNPass = ""

	DefaultListenAddr = ":3001"
)

// Config holds application configuration shared by the server and the CLI.
type Config struct {
	// Domain is the backend server domain (may include a port for local runs).
	Domain string

	// Insecure switches the client to http/ws instead of https/wss.
	Insecure bool

	// ListenAddr is the address the server binds to.
	ListenAddr string

	// RedisAddr enables the Redis-backed room store when non-empty.
	RedisAddr string

	// ICE servers for WebRTC
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// Options for loading config with CLI flag overrides
type Options struct {
	Domain     string
	Insecure   bool
	ListenAddr string
	RedisAddr  string
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// Load reads configuration with the following priority:
// 1. CLI flags (passed via Options) - highest priority
// 2. Environment variables
// 3. Hardcoded defaults - lowest priority
func Load(opts Options) (*Config, error) {
	domain := firstNonEmpty(opts.Domain, os.Getenv("DOMAIN"), DefaultDomain)
	listenAddr := firstNonEmpty(opts.ListenAddr, os.Getenv("LISTEN_ADDR"), DefaultListenAddr)
	redisAddr := firstNonEmpty(opts.RedisAddr, os.Getenv("REDIS_ADDR"), "")

	stunServer := firstNonEmpty(opts.STUNServer, os.Getenv("STUN_SERVER"), DefaultSTUN)
	turnServer := firstNonEmpty(opts.TURNServer, os.Getenv("TURN_SERVER"), DefaultTURN)
	turnUser := firstNonEmpty(opts.TURNUser, os.Getenv("TURN_USERNAME"), DefaultTURNUser)
	turnPass := firstNonEmpty(opts.TURNPass, os.Getenv("TURN_PASSWORD"), DefaultTURNPass)

	insecure := opts.Insecure
	if !insecure && os.Getenv("INSECURE") == "1" {
		insecure = true
	}
	// Local domains never have valid certificates.
	if strings.HasPrefix(domain, "localhost") || strings.HasPrefix(domain, "127.0.0.1") {
		insecure = true
	}

	return &Config{
		Domain:     domain,
		Insecure:   insecure,
		ListenAddr: listenAddr,
		RedisAddr:  redisAddr,
		STUNServer: stunServer,
		TURNServer: turnServer,
		TURNUser:   turnUser,
		TURNPass:   turnPass,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// APIBaseURL returns the base URL for the room REST surface.
func (c *Config) APIBaseURL() string {
	return fmt.Sprintf("%s://%s/api", c.httpScheme(), c.Domain)
}

// WebSocketURL returns the signaling websocket endpoint.
func (c *Config) WebSocketURL() string {
	scheme := "wss"
	if c.Insecure {
		scheme = "ws"
	}
	return fmt.Sprintf("%s://%s/ws", scheme, c.Domain)
}

// GetRoomLink returns the shareable URL for a room ID.
func (c *Config) GetRoomLink(roomID string) string {
	return fmt.Sprintf("%s://%s/room/%s", c.httpScheme(), c.Domain, roomID)
}

func (c *Config) httpScheme() string {
	if c.Insecure {
		return "http"
	}
	return "https"
}

// GetSTUNServers returns STUN server URLs as strings
func (c *Config) GetSTUNServers() []string {
	return []string{c.STUNServer}
}

// GetTURNServers returns TURN server URLs if configured
func (c *Config) GetTURNServers() []string {
	if c.TURNServer == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("%s:3478?transport=udp", c.TURNServer),
		fmt.Sprintf("%s:3478?transport=tcp", c.TURNServer),
	}
}

// GetTURNCredentials returns TURN username and password
func (c *Config) GetTURNCredentials() (string, string) {
	return c.TURNUser, c.TURNPass
}
