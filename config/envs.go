package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string          // Host IP for the server
	RESTPort       int             // Port for the REST API
	DBHost         string          // Hostname or IP address for the database
	DBPort         int             // Port number for the database
	DBUser         string          // Username for the database
	DBPassword     string          // Password for the database
	DBName         string          // Name of the database
	RedisAddr      string          // host:port of the redis server
	RedisPassword  string          // Password for redis, empty for none
	RedisDB        int             // Redis logical database
	GinMode        string          // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret      string          // Secret key for JWT signing
	JWTIssuer      string          // Issuer claim for JWTs
	Maze           maze.Dimensions // Size of generated mazes
	MazeSeed       int64           // Seed for maze generation, 0 for a time based seed
	TrapPolicy     maze.TrapPolicy // Whether trap placement runs
	PlayerLives    int             // Lives per level
	LeaderboardKey string          // Redis key of the leaderboard sorted set
	LeaderboardTTL int             // Leaderboard expiry in seconds, 0 to keep forever
}

// Load reads the configuration from the environment, loading a .env file first if present.
// Maze settings are validated here so bad dimensions never reach the generator.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	e := &envReader{}
	c := Config{
		HostIP:        e.mustGet("HOST_IP"),
		RESTPort:      e.mustGetInt("REST_PORT"),
		DBHost:        e.mustGet("DB_HOST"),
		DBPort:        e.mustGetInt("DB_PORT"),
		DBUser:        e.mustGet("DB_USER"),
		DBPassword:    e.mustGet("DB_PASS"),
		DBName:        e.mustGet("DB_NAME"),
		RedisAddr:     e.mustGet("REDIS_ADDR"),
		RedisPassword: getEnvWithDefault("REDIS_PASS", ""),
		RedisDB:       e.getIntWithDefault("REDIS_DB", 0),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     e.mustGet("JWT_SECRET"),
		JWTIssuer:     e.mustGet("JWT_ISSUER"),
		Maze: maze.Dimensions{
			Rows: e.getIntWithDefault("MAZE_ROWS", maze.DefaultDimensions.Rows),
			Cols: e.getIntWithDefault("MAZE_COLS", maze.DefaultDimensions.Cols),
		},
		MazeSeed:       int64(e.getIntWithDefault("MAZE_SEED", 0)),
		PlayerLives:    e.getIntWithDefault("PLAYER_LIVES", 3),
		LeaderboardKey: getEnvWithDefault("LEADERBOARD_KEY", "trapmaze:leaderboard"),
		LeaderboardTTL: e.getIntWithDefault("LEADERBOARD_TTL", 0),
	}
	if e.err != nil {
		return Config{}, e.err
	}

	policy, err := maze.ParseTrapPolicy(getEnvWithDefault("TRAP_POLICY", maze.TrapPolicyDeadEnds.String()))
	if err != nil {
		return Config{}, fmt.Errorf("TRAP_POLICY: %w", err)
	}
	c.TrapPolicy = policy

	if err := c.Maze.Validate(); err != nil {
		return Config{}, fmt.Errorf("MAZE_ROWS/MAZE_COLS: %w", err)
	}
	if c.PlayerLives <= 0 {
		return Config{}, fmt.Errorf("PLAYER_LIVES must be positive, got %d", c.PlayerLives)
	}

	return c, nil
}

// envReader collects the first error while reading variables.
type envReader struct {
	err error
}

// mustGet retrieves the value of a required environment variable.
func (e *envReader) mustGet(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists && e.err == nil {
		e.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetInt retrieves a required environment variable as an integer.
func (e *envReader) mustGetInt(key string) int {
	valueStr := e.mustGet(key)
	if e.err != nil {
		return 0
	}
	return e.atoi(key, valueStr)
}

// getIntWithDefault retrieves an optional integer environment variable.
func (e *envReader) getIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return e.atoi(key, valueStr)
}

func (e *envReader) atoi(key, valueStr string) int {
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
