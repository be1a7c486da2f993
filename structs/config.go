package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Ledger    *LedgerConfig
	Wallet    *WalletConfig
	Shop      *ShopConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Auth      *AuthConfig
}

type ServerConfig struct {
	AppName        string        // ZKShop
	Environment    string        // development, production
	Port           string        // :4000
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	MaxBodyBytes   int64

	// TrustProxy honors X-Forwarded-For and X-Real-IP.
	TrustProxy bool
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Driver       string // sqlite, postgres
	Path         string // sqlite file
	DSN          string // postgres connection string
	MaxOpenConns int
	QueryTimeout time.Duration
}

type LedgerConfig struct {
	RPCURL              string
	Timeout             time.Duration // 0 disables the client timeout
	DefaultTokenID      string
	Memo                string
	PollInterval        time.Duration
	FinalizationTimeout time.Duration
}

type WalletConfig struct {
	ExportPath string
}

type ShopConfig struct {
	Owner string
	Name  string
}

type CacheConfig struct {
	Enabled      bool
	Address      string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CartTTL      time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	LedgerLimit   int // balance, purchase and transfer calls hit the remote node
	LedgerWindow  time.Duration
}

type AuthConfig struct {
	AdminSecret      string // empty disables the admin guard
	AdminTokenExpiry time.Duration
}
