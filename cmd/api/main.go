package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/config"
	appHTTP "github.com/clocklabs/timeclock-backend-go/internal/handler/http"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/ratelimit"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/storage"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/task"
	"github.com/clocklabs/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clocklabs/timeclock-backend-go/internal/service/attendance"
	authService "github.com/clocklabs/timeclock-backend-go/internal/service/auth"
	exportService "github.com/clocklabs/timeclock-backend-go/internal/service/export"
	kioskService "github.com/clocklabs/timeclock-backend-go/internal/service/kiosk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	exportJobRepo := postgresql.NewExportJobRepository(db)
	exportRowsRepo := postgresql.NewExportRowsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	var artifactHandler appHTTP.ArtifactHandler
	switch cfg.Storage.Type {
	case "local":
		localStorage, err := storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
			cfg.Storage.SignKey,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
		fileStorage = localStorage
		artifactHandler = appHTTP.NewArtifactHandler(localStorage)
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	loginLimiter := ratelimit.NewMemoryLimiter(5, 15*time.Minute, 15*time.Minute)

	// Background cleanup goroutine: drop expired limiter entries so unique
	// failed identities cannot grow the map without bound.
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				loginLimiter.Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	runner := task.NewRunner()

	authSvc := authService.NewAuthService(userRepo, jwtService, loginLimiter)
	attendanceSvc := attendanceService.NewAttendanceService(db, timeEntryRepo, leaveRepo)
	kioskSvc := kioskService.NewKioskService(cfg.Kiosk.BadgeSecret, employeeRepo, attendanceSvc)
	exportSvc := exportService.NewExportService(exportJobRepo, exportRowsRepo, userRepo, fileStorage, runner, cfg.Export.URLTTL)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	kioskHandler := appHTTP.NewKioskHandler(kioskSvc)
	exportHandler := appHTTP.NewExportHandler(exportSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, kioskHandler, exportHandler, artifactHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}

	// Let queued export jobs reach a terminal status before the pool closes.
	runner.Wait()
}
