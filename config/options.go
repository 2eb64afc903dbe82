package config

const (
	defaultLogFile           = "shelfwise.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/shelfwise"
	defaultCatalogEndpoint   = "https://www.googleapis.com/books/v1/volumes"
	defaultCatalogLanguage   = "en"
	defaultCatalogMaxResults = 5
	defaultCatalogTimeout    = 5
	defaultOllamaEndpoint    = "http://localhost:11434"
	defaultOllamaModel       = "llama3.2:1b"
	defaultRefreshInterval   = 12
	defaultWorkerPoolSize    = 4
	defaultJWTSecret         = ""
)

// Why use mapstructure instead of json as field tags: viper unmarshals
// through mapstructure, json tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// CatalogEndpoint is the base URL of the external book catalog
	CatalogEndpoint string `mapstructure:"catalog_endpoint"`
	// CatalogLanguage restricts catalog searches to one content language
	CatalogLanguage string `mapstructure:"catalog_language"`
	// CatalogMaxResults caps the number of catalog candidates per import
	CatalogMaxResults int `mapstructure:"catalog_max_results"`
	// CatalogTimeout is the catalog request timeout, in seconds
	CatalogTimeout int `mapstructure:"catalog_timeout"`
	// OllamaEndpoint is the base URL of the ollama-compatible chat server
	OllamaEndpoint string `mapstructure:"ollama_endpoint"`
	// OllamaModel is the model used for recommendation generation
	OllamaModel string `mapstructure:"ollama_model"`
	// RefreshInterval is how often scheduled recommendations run, in hours.
	// Set to 0 to disable the scheduled refresh.
	RefreshInterval int `mapstructure:"refresh_interval"`
	// WorkerPoolSize is the number of background recommendation workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// JWTSecret signs access tokens; generated and persisted when empty
	JWTSecret string `mapstructure:"jwt_secret"`
}

var Opts *Options

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		CatalogEndpoint:   defaultCatalogEndpoint,
		CatalogLanguage:   defaultCatalogLanguage,
		CatalogMaxResults: defaultCatalogMaxResults,
		CatalogTimeout:    defaultCatalogTimeout,
		OllamaEndpoint:    defaultOllamaEndpoint,
		OllamaModel:       defaultOllamaModel,
		RefreshInterval:   defaultRefreshInterval,
		WorkerPoolSize:    defaultWorkerPoolSize,
		JWTSecret:         defaultJWTSecret,
	}
	return Opts
}
