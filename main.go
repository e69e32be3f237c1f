package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-trapmaze/api"
	gameapi "github.com/beka-birhanu/vinom-trapmaze/api/game"
	api_i "github.com/beka-birhanu/vinom-trapmaze/api/i"
	"github.com/beka-birhanu/vinom-trapmaze/api/identity"
	leaderboardapi "github.com/beka-birhanu/vinom-trapmaze/api/leaderboard"
	"github.com/beka-birhanu/vinom-trapmaze/config"
	pb "github.com/beka-birhanu/vinom-trapmaze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-trapmaze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-trapmaze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-trapmaze/infrastruture/token"
	"github.com/beka-birhanu/vinom-trapmaze/logger"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/beka-birhanu/vinom-trapmaze/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs                  config.Config
	mongoClient           *mongo.Client
	redisClient           *redis.Client
	userRepo              *repo.UserRepo
	scoreRepo             *repo.ScoreRepo
	leaderboard           *service.Leaderboard
	mazeFactory           service.MazeFactory
	levelSessionManager   i.LevelSessionManager
	levelController       api_i.Controller
	leaderboardController api_i.Controller
	jwtTokenizer          i.Tokenizer
	authService           i.Authenticator
	authController        api_i.Controller
	router                *api.Router
	appLogger             i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	userRepo = repo.NewUserRepo(mongoClient, envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}

	scoreRepo = repo.NewScoreRepo(mongoClient, envs.DBName, "scores")
	if err := scoreRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating score indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
		DB:       envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	ranking, err := sortedstorage.NewRedisRanking(redisClient, envs.LeaderboardTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating ranking store: %v", err))
		os.Exit(1)
	}

	leaderboard, err = service.NewLeaderboard(scoreRepo, ranking, envs.LeaderboardKey, newLogger("LEADERBOARD", config.ColorMagenta))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initMazeFactory() {
	gen, err := maze.NewGenerator(maze.Options{
		Dimensions: envs.Maze,
		TrapPolicy: envs.TrapPolicy,
	}, maze.NewRandom(envs.MazeSeed))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze generator: %v", err))
		os.Exit(1)
	}

	mazeFactory = service.NewMazeFactory(gen, newLogger("MAZE", config.ColorBlue))
	appLogger.Info("Maze factory initialized")
}

func initLevelSessionManager() {
	var err error
	levelSessionManager, err = service.NewLevelSessionManager(&service.Config{
		MazeFactory: mazeFactory,
		Leaderboard: leaderboard,
		Lives:       envs.PlayerLives,
		Logger:      newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level session manager initialized")
}

func initControllers() {
	var err error
	levelController, err = gameapi.NewLevelController(levelSessionManager, &pb.Protobuf{}, appLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level controller: %v", err))
		os.Exit(1)
	}

	leaderboardController, err = leaderboardapi.NewController(leaderboard, appLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game controllers initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, levelController, leaderboardController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func initTelemetry(ctx context.Context) func() {
	if !telemetry.Enabled() {
		return func() {}
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Telemetry setup failed, running without traces: %v", err))
		return func() {}
	}
	appLogger.Info("Telemetry initialized")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			appLogger.Error(fmt.Sprintf("Shutting down telemetry: %v", err))
		}
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	var err error
	envs, err = config.Load()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading config: %v", err))
		os.Exit(1)
	}

	stopTelemetry := initTelemetry(ctx)
	defer stopTelemetry()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRepos(ctx)

	initRedis(ctx)
	defer redisClient.Close()

	initLeaderboard()
	initMazeFactory()
	initLevelSessionManager()
	initControllers()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
