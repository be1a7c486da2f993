package config

import (
	"strings"
	"sync"
	"time"

	"github.com/Arihaan/ZKShop/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load reads the configuration from the environment without caching it.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "ZKShop"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			Port:           listenAddress(),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 3*time.Minute), // finality waits run inside the request
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: int(getEnvAsBytes("SERVER_MAX_HEADER_BYTES", 1<<20)),
			MaxBodyBytes:   getEnvAsBytes("SERVER_MAX_BODY_BYTES", 1<<20),
			TrustProxy:     getEnvAsBool("SERVER_TRUST_PROXY", false),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-Request-Id"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:       strings.ToLower(getEnvAsString("DB_DRIVER", "sqlite")),
			Path:         getEnvAsString("DB_PATH", "zkshop.db"),
			DSN:          getEnvAsString("DB_DSN", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			QueryTimeout: getEnvAsTimeDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		},
		Ledger: &structs.LedgerConfig{
			RPCURL:              getEnvAsString("LEDGER_RPC_URL", "http://localhost:7000/rpc"),
			Timeout:             getEnvAsTimeDuration("LEDGER_TIMEOUT", 0),
			DefaultTokenID:      getEnvAsString("LEDGER_TOKEN_ID", "EUDemo"),
			Memo:                getEnvAsString("LEDGER_TRANSFER_MEMO", "ZKShop purchase"),
			PollInterval:        getEnvAsTimeDuration("LEDGER_POLL_INTERVAL", time.Second),
			FinalizationTimeout: getEnvAsTimeDuration("LEDGER_FINALIZATION_TIMEOUT", 2*time.Minute),
		},
		Wallet: &structs.WalletConfig{
			ExportPath: getEnvAsString("WALLET_EXPORT_PATH", "wallet/wallet.export"),
		},
		Shop: &structs.ShopConfig{
			Owner: getEnvAsString("SHOP_OWNER", "central"),
			Name:  getEnvAsString("SHOP_NAME", "ZKShop"),
		},
		Cache: &structs.CacheConfig{
			Enabled:      getEnvAsBool("CACHE_ENABLED", false),
			Address:      getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
			Password:     getEnvAsString("CACHE_PASSWORD", ""),
			DB:           getEnvAsInt("CACHE_DB", 0),
			PoolSize:     getEnvAsInt("CACHE_POOL_SIZE", 10),
			DialTimeout:  getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			CartTTL:      getEnvAsTimeDuration("CACHE_CART_TTL", 24*time.Hour),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", false),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 300),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			LedgerLimit:   getEnvAsInt("RATE_LIMIT_LEDGER", 30),
			LedgerWindow:  getEnvAsTimeDuration("RATE_LIMIT_LEDGER_WINDOW", time.Minute),
		},
		Auth: &structs.AuthConfig{
			AdminSecret:      getEnvAsString("AUTH_ADMIN_SECRET", ""),
			AdminTokenExpiry: getEnvAsTimeDuration("AUTH_ADMIN_TOKEN_EXPIRY", 12*time.Hour),
		},
	}
}

// listenAddress honours the bare PORT override used by hosting platforms
// before falling back to APP_PORT.
func listenAddress() string {
	if port, ok := lookupEnv("PORT"); ok && port != "" {
		if strings.HasPrefix(port, ":") {
			return port
		}
		return ":" + port
	}
	return getEnvAsString("APP_PORT", ":4000")
}

func GetLogLevel() string {
	if IsProduction() {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
