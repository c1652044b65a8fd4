package config

// EnvPrefix is empty because every variable already carries the PRINTDESK_
// prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "PRINTDESK_DB_DSN"
	EnvDBHost = "PRINTDESK_DB_HOST"
	EnvDBUser = "PRINTDESK_DB_USER"
	EnvDBName = "PRINTDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
