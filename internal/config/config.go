package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerPort         int    `json:"server_port"`
	JWTSecretKey       string `json:"jwt_secret_key"`
	JWTExpirationHours int    `json:"jwt_expiration_hours"`
	DefaultRateLimit   int    `json:"default_rate_limit"`
	GlobalRateLimit    int    `json:"global_rate_limit"`

	// PublicSchemaName is the distinguished schema holding the global
	// identity records and the tenant catalog.
	PublicSchemaName string `json:"public_schema_name"`

	// TenantDomain is the base domain new tenants are provisioned under,
	// e.g. slug "acme" + domain "example.com" -> "acme.example.com".
	TenantDomain string `json:"tenant_domain"`

	// SubfolderPrefix, when set, switches routing to subfolders: a
	// provisioned tenant's domain becomes the bare slug.
	SubfolderPrefix string `json:"subfolder_prefix"`

	// MultiTypeTenants enables the tenant-type discriminator; TenantTypes
	// is the registry of accepted types. The public schema name must be a
	// registered type when enabled.
	MultiTypeTenants bool     `json:"multi_type_tenants"`
	TenantTypes      []string `json:"tenant_types"`

	// AccessDeniedMessage is the body of the tenant access middleware's
	// not-found style denial.
	AccessDeniedMessage string `json:"access_denied_message"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	var tenantTypes []string
	if raw := os.Getenv("TENANT_TYPES"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tenantTypes = append(tenantTypes, t)
			}
		}
	}

	return &Config{
		ServerPort:          serverPort,
		JWTSecretKey:        os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours:  jwtExpirationHours,
		DefaultRateLimit:    defaultRateLimit,
		GlobalRateLimit:     globalRateLimit,
		PublicSchemaName:    getEnvWithDefault("PUBLIC_SCHEMA_NAME", "public"),
		TenantDomain:        getEnvWithDefault("TENANT_DOMAIN", "localhost"),
		SubfolderPrefix:     os.Getenv("TENANT_SUBFOLDER_PREFIX"),
		MultiTypeTenants:    os.Getenv("MULTI_TYPE_TENANTS") == "true",
		TenantTypes:         tenantTypes,
		AccessDeniedMessage: getEnvWithDefault("ACCESS_DENIED_MESSAGE", "Access to this resource is denied."),
	}, nil
}

// HasTenantType reports whether t is a registered tenant type.
func (c *Config) HasTenantType(t string) bool {
	for _, valid := range c.TenantTypes {
		if valid == t {
			return true
		}
	}
	return false
}
