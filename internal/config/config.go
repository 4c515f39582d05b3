package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matchpulse/matchpulse/internal/platform/logging"
)

// Config stores runtime configuration for a pipeline run.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	CurrentSeason string
	Seasons       []Season

	DataDir    string
	RawDir     string
	CleanDir   string
	OutputPath string

	FootballDataURL string
	FPLArchiveBase  string
	FPLLiveAPI      string
	UnderstatURL    string

	FetchEnabled     bool
	FPLEnabled       bool
	UnderstatEnabled bool
	FetchTimeout     time.Duration
	RequestDelay     time.Duration

	SourceCircuitEnabled        bool
	SourceCircuitFailureCount   int
	SourceCircuitOpenTimeout    time.Duration
	SourceCircuitHalfOpenMaxReq int

	CacheEnabled bool
	CacheTTL     time.Duration

	SnapshotDBEnabled       bool
	DBURL                   string
	DBDisablePreparedBinary bool

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	SectionWorkers int
	LogLevel       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	currentSeason := strings.TrimSpace(getEnv("CURRENT_SEASON", defaultCurrentSeason))
	if _, ok := SeasonByLabel(currentSeason); !ok {
		return Config{}, fmt.Errorf("invalid CURRENT_SEASON %q: not in the season table", currentSeason)
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}

	fetchEnabled, err := strconv.ParseBool(getEnv("FETCH_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_ENABLED: %w", err)
	}
	fplEnabled, err := strconv.ParseBool(getEnv("FPL_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_ENABLED: %w", err)
	}
	understatEnabled, err := strconv.ParseBool(getEnv("UNDERSTAT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_ENABLED: %w", err)
	}

	fetchTimeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_TIMEOUT: %w", err)
	}
	if fetchTimeout <= 0 {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT must be > 0")
	}

	requestDelay, err := time.ParseDuration(getEnv("REQUEST_DELAY", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REQUEST_DELAY: %w", err)
	}
	if requestDelay < 0 {
		return Config{}, fmt.Errorf("REQUEST_DELAY must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("SOURCE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("SOURCE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("SOURCE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	snapshotDBEnabled, err := strconv.ParseBool(getEnv("SNAPSHOT_DB_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_DB_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if snapshotDBEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when SNAPSHOT_DB_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	sectionWorkers, err := getEnvAsInt("SECTION_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SECTION_WORKERS: %w", err)
	}
	if sectionWorkers < 1 {
		return Config{}, fmt.Errorf("SECTION_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "matchpulse-pipeline"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),

		CurrentSeason: currentSeason,
		Seasons:       ActiveSeasons(),

		DataDir:    dataDir,
		RawDir:     filepath.Join(dataDir, "raw"),
		CleanDir:   filepath.Join(dataDir, "cleaned"),
		OutputPath: getEnv("OUTPUT_PATH", filepath.Join(dataDir, "dashboard_data.json")),

		FootballDataURL: getEnv("FOOTBALL_DATA_URL", "https://www.football-data.co.uk/mmz4281/%s/E0.csv"),
		FPLArchiveBase:  getEnv("FPL_ARCHIVE_BASE", "https://raw.githubusercontent.com/vaastav/Fantasy-Premier-League/master/data/%s"),
		FPLLiveAPI:      getEnv("FPL_LIVE_API", "https://fantasy.premierleague.com/api"),
		UnderstatURL:    getEnv("UNDERSTAT_URL", "https://understat.com/league/EPL/%s"),

		FetchEnabled:     fetchEnabled,
		FPLEnabled:       fplEnabled,
		UnderstatEnabled: understatEnabled,
		FetchTimeout:     fetchTimeout,
		RequestDelay:     requestDelay,

		SourceCircuitEnabled:        circuitEnabled,
		SourceCircuitFailureCount:   circuitFailureCount,
		SourceCircuitOpenTimeout:    circuitOpenTimeout,
		SourceCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		SnapshotDBEnabled:       snapshotDBEnabled,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,

		SectionWorkers: sectionWorkers,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

// SeasonLabels returns the configured season labels in chronological order.
func (c Config) SeasonLabels() []string {
	labels := make([]string, 0, len(c.Seasons))
	for _, s := range c.Seasons {
		labels = append(labels, s.Label)
	}
	return labels
}

// Current returns the season entry for CurrentSeason. Load guarantees the
// label resolves.
func (c Config) Current() Season {
	for _, s := range c.Seasons {
		if s.Label == c.CurrentSeason {
			return s
		}
	}
	return Season{}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
