package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Soham-Kakkar/tenant-verification-system/internal/app"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/config"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/auth"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/repositories"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/services"
)

const (
	rootEmail    = "root@police.gov"
	rootPassword = "bootstrap1"
)

var otpPattern = regexp.MustCompile(`is: (\d+)\.`)

// TestServer runs the real router over SQLite, miniredis and an in-memory
// policy enforcer. SMS messages are captured instead of sent.
type TestServer struct {
	t         *testing.T
	Server    *httptest.Server
	Container *app.Container
	SMS       *mocks.MockSMSSender
	Redis     *miniredis.Miniredis
}

// Response is a decoded JSON envelope
type Response struct {
	Status int
	Data   any
	Error  string
	Raw    []byte
}

// Object returns Data as a JSON object
func (r Response) Object() map[string]any {
	obj, _ := r.Data.(map[string]any)
	return obj
}

// List returns Data as a JSON array
func (r Response) List() []any {
	list, _ := r.Data.([]any)
	return list
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:          gin.TestMode,
		JWTSecret:        "e2e-secret-with-enough-length",
		JWTIssuer:        "tenant-verification-e2e",
		AccessTTL:        24 * time.Hour,
		OTP_TTL:          10 * time.Minute,
		OTP_Length:       6,
		OTP_MaxAttempts:  5,
		OTP_ResendWindow: time.Minute,
		MaxFileBytes:     2 << 20,
		MaxTotalBytes:    6 << 20,
	}
}

// NewTestServer boots a seeded server with a superAdmin account
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(repositories.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	enforcer, err := auth.NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sms := mocks.NewMockSMSSender()
	c := app.NewContainerWith(testConfig(), logger, clock.Real(), db, rdb, services.NewPolicyService(enforcer), sms)

	if err := app.Seed(context.Background(), c.DirectoryRepo, c.AuthSvc,
		app.AdminSeed{Name: "Root", Email: rootEmail, Password: rootPassword}, logger); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	srv := httptest.NewServer(c.Router())
	t.Cleanup(srv.Close)

	return &TestServer{t: t, Server: srv, Container: c, SMS: sms, Redis: mr}
}

// Do sends a JSON request. token may be empty.
func (s *TestServer) Do(method, path, token string, body any) Response {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		s.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.send(req, token)
}

// DoRaw sends a prepared body with its content type
func (s *TestServer) DoRaw(method, path, token, contentType string, body io.Reader) Response {
	s.t.Helper()
	req, err := http.NewRequest(method, s.Server.URL+path, body)
	if err != nil {
		s.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	return s.send(req, token)
}

func (s *TestServer) send(req *http.Request, token string) Response {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Server.Client().Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("read body: %v", err)
	}

	out := Response{Status: resp.StatusCode, Raw: raw}
	var envelope struct {
		Data  any    `json:"data"`
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		out.Data, out.Error = envelope.Data, envelope.Error
	}
	return out
}

// Login returns a bearer token for the account
func (s *TestServer) Login(email, password string) string {
	s.t.Helper()
	resp := s.Do(http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": password})
	if resp.Status != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", email, resp.Status, resp.Raw)
	}
	return resp.Object()["token"].(string)
}

// LastOTP returns the code of the most recent SMS sent to phone
func (s *TestServer) LastOTP(phone string) string {
	s.t.Helper()
	for i := len(s.SMS.Sent) - 1; i >= 0; i-- {
		if s.SMS.Sent[i].To != phone {
			continue
		}
		if m := otpPattern.FindStringSubmatch(s.SMS.Sent[i].Message); m != nil {
			return m[1]
		}
	}
	s.t.Fatalf("no OTP sent to %s", phone)
	return ""
}
