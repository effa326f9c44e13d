package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/mazechase/api"
	gameapi "github.com/beka-birhanu/mazechase/api/game"
	api_i "github.com/beka-birhanu/mazechase/api/i"
	"github.com/beka-birhanu/mazechase/api/identity"
	"github.com/beka-birhanu/mazechase/config"
	"github.com/beka-birhanu/mazechase/infrastruture/leaderboard"
	"github.com/beka-birhanu/mazechase/infrastruture/repo"
	"github.com/beka-birhanu/mazechase/infrastruture/token"
	"github.com/beka-birhanu/mazechase/service"
	"github.com/beka-birhanu/mazechase/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sweepInterval = time.Minute

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           i.UserRepo
	runRepo            i.RunRepo
	escapeBoard        i.Leaderboard
	gameSessionManager *service.GameSessionManager
	sessionController  api_i.Controller
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func fatal(format string, args ...interface{}) {
	appLogger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func info(msg string) {
	appLogger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed: %v", err)
	}
	info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	var err error
	userRepo, err = repo.NewUserRepo(ctx, mongoClient, config.Envs.DBName, "users")
	if err != nil {
		fatal("Creating user repository: %v", err)
	}
	runRepo, err = repo.NewRunRepo(ctx, mongoClient, config.Envs.DBName, "runs")
	if err != nil {
		fatal("Creating run repository: %v", err)
	}
	info("Repositories initialized")
}

func initLeaderboard() {
	var err error
	escapeBoard, err = leaderboard.NewRedisLeaderboard(redisClient, "mazechase", int64(config.Envs.LeaderboardSize))
	if err != nil {
		fatal("Creating leaderboard: %v", err)
	}
	info("Leaderboard initialized")
}

func initSessionManager() {
	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		RunRepo:     runRepo,
		Leaderboard: escapeBoard,
		IdleTimeout: config.Envs.SessionIdleTimeout,
		Logger:      newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		fatal("Creating session manager: %v", err)
	}
	info("Session manager initialized")
}

func initSessionController() {
	var err error
	sessionController, err = gameapi.NewSessionController(gameSessionManager)
	if err != nil {
		fatal("Creating session controller: %v", err)
	}
	info("Session controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		fatal("Creating auth service: %v", err)
	}
	info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, sessionController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	info("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	initMongo(setupCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(setupCtx)
	defer redisClient.Close()

	initRepos(setupCtx)
	initLeaderboard()
	initSessionManager()
	defer gameSessionManager.StopAll()
	go gameSessionManager.RunSweeper(ctx, sweepInterval)

	initSessionController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run()
	}()

	select {
	case err := <-errCh:
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
	case <-ctx.Done():
		info("Shutting down")
	}
}
