package main

import (
	"fmt"
	nethttp "net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"production/cmd"
	"production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		AdvisoryServiceURL:   goDotEnvVariable("ADVISORY_SERVICE_URL"),
		NotifyServiceURL:     goDotEnvVariable("NOTIFY_SERVICE_URL"),
		CartonDimDivisor:     goDotEnvVariable("CARTON_DIM_DIVISOR"),
		DefaultUnitWeightKg:  goDotEnvVariable("DEFAULT_UNIT_WEIGHT_KG"),
		DefaultUnitVolumeCm3: goDotEnvVariable("DEFAULT_UNIT_VOLUME_CM3"),
		StaleRunThreshold:    goDotEnvVariable("STALE_RUN_THRESHOLD"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Validator = http.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := http.NewServer(
		app.CreateCreateRunCommandHandler(),
		app.CreateStartRunCommandHandler(),
		app.CreatePauseRunCommandHandler(),
		app.CreateCancelRunCommandHandler(),
		app.CreateCompleteRunCommandHandler(),
		app.CreateRecordOutputCommandHandler(),
		app.CreateRecordRejectCommandHandler(),
		app.CreateRecordMaterialCommandHandler(),
		app.CreateAppendProcessLogCommandHandler(),
		app.CreateCreateCutLayCommandHandler(),
		app.CreateGenerateBundlesCommandHandler(),
		app.CreateCreateCartonCommandHandler(),
		app.CreateAddCartonContentCommandHandler(),
		app.CreateCloseCartonCommandHandler(),
		app.CreateGetRunDetailsQueryHandler(),
		app.CreateReconcileRunQueryHandler(),
		app.CreateListMachinesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
