package app

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/config"
	httpx "github.com/Soham-Kakkar/tenant-verification-system/internal/http"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/handlers"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/audit"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/auth"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/database"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/notifications"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/repositories"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  clock.Clock

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Audit       domain.AuditLogger
	SMS         domain.SMSSender

	// Repositories
	UserRepo         domain.UserRepository
	SessionRepo      domain.SessionRepository
	DirectoryRepo    domain.DirectoryRepository
	VerificationRepo domain.VerificationRepository
	NotificationRepo domain.NotificationRepository
	Blobs            domain.BlobStore

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	PolicySvc       domain.PolicyService
	OTPSvc          domain.OTPService
	NotificationSvc domain.NotificationService
	VerificationSvc domain.VerificationService
	UserSvc         domain.UserService
	AuthSvc         domain.AuthService
}

// NewContainer connects to Postgres and Redis and wires every service
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, logger, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	cas, err := auth.NewCasbinService(db)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Clock:       clock.Real(),
		DB:          db,
		RedisClient: rdb,
		PolicySvc:   services.NewPolicyService(cas.E),
	}
	c.wire()
	return c, nil
}

// NewContainerWith wires services on top of already opened stores. The
// policy service and SMS sender are supplied by the caller.
func NewContainerWith(cfg *config.Config, logger *slog.Logger, clk clock.Clock, db *gorm.DB, rdb *redis.Client, policy domain.PolicyService, sms domain.SMSSender) *Container {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Clock:       clk,
		DB:          db,
		RedisClient: rdb,
		PolicySvc:   policy,
		SMS:         sms,
	}
	c.wire()
	return c
}

func (c *Container) wire() {
	cfg := c.Config
	c.Audit = audit.NewSlogAuditLogger(c.Logger)
	if c.SMS == nil {
		c.SMS = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Logger)
	}

	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, cfg.AccessTTL)
	c.DirectoryRepo = repositories.NewDirectoryRepository(c.DB)
	c.VerificationRepo = repositories.NewVerificationRepository(c.DB)
	c.NotificationRepo = repositories.NewNotificationRepository(c.DB)
	c.Blobs = repositories.NewBlobStore(c.DB)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)

	c.OTPSvc = services.NewOTPService(c.SMS, c.RedisClient, c.Clock, c.Audit, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	c.NotificationSvc = services.NewNotificationService(c.NotificationRepo, c.Logger)
	c.VerificationSvc = services.NewVerificationService(services.VerificationDeps{
		Requests:  c.VerificationRepo,
		Users:     c.UserRepo,
		Directory: c.DirectoryRepo,
		Blobs:     c.Blobs,
		OTP:       c.OTPSvc,
		Notifier:  c.NotificationSvc,
		Audit:     c.Audit,
		Clock:     c.Clock,
		Limits: services.UploadLimits{
			MaxFileBytes:  cfg.MaxFileBytes,
			MaxTotalBytes: cfg.MaxTotalBytes,
		},
	})
	c.UserSvc = services.NewUserService(c.UserRepo, c.VerificationRepo, c.DirectoryRepo, c.PasswordSvc, c.Audit)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.SessionRepo, c.DirectoryRepo, c.PasswordSvc, c.TokenSvc, c.Audit, c.Clock)
}

// Router builds the HTTP router over the container's services
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(httpx.RouterDeps{
		Auth:          handlers.NewAuthHandlers(c.AuthSvc),
		Landlord:      handlers.NewLandlordHandlers(c.VerificationSvc, c.UserSvc, c.Config.MaxTotalBytes),
		Verification:  handlers.NewVerificationHandlers(c.VerificationSvc),
		Users:         handlers.NewUserHandlers(c.UserSvc),
		Notifications: handlers.NewNotificationHandlers(c.NotificationSvc),
		Policies:      handlers.NewPolicyHandlers(c.PolicySvc, c.Audit),
		JWT:           middleware.NewAuthMW(c.TokenSvc, c.SessionRepo, c.UserRepo),
		Casbin:        middleware.NewCasbinMW(c.PolicySvc, c.Audit),
		Logger:        c.Logger,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
