package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trading_dashboard/internal/config"
	"trading_dashboard/internal/domain"
	"trading_dashboard/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// fixedNow pins the injected clock so stored dates are predictable.
var fixedNow = func() time.Time {
	return time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
}

const fixedDate = "2025-3-7"

type sentMail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// fakeMailer records deliveries, or fails them all when fail is set.
type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (f *fakeMailer) SendText(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) SendHTML(to, subject, html string) error {
	if f.fail {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: html, HTML: true})
	return nil
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	rdb    *redis.Client
	mail   *fakeMailer
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Stat{},
		&domain.Deposit{},
		&domain.Withdrawal{},
		&domain.Notification{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mail := &fakeMailer{}
	cfg := &config.Config{
		JWTSecret:  testSecret,
		OpsMailbox: "ops@example.com",
		SiteURL:    "dashboard.example.com",
	}

	r := gin.New()
	r.LoadHTMLGlob("../../templates/*.html")
	RegisterRoutes(r, db, rdb, mail, cfg, fixedNow)

	return &testEnv{t: t, db: db, rdb: rdb, mail: mail, router: r}
}

// createUser inserts a user with its Stat row, bcrypt password "password123".
func (e *testEnv) createUser(name, email, role string) domain.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(e.t, err)
	user := domain.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(e.t, e.db.Create(&user).Error)
	require.NoError(e.t, e.db.Create(&domain.Stat{UserID: user.ID}).Error)
	return user
}

func (e *testEnv) setStat(userID uint, balance, earning, deposit, withdraws int64) {
	e.t.Helper()
	require.NoError(e.t, e.db.Model(&domain.Stat{}).Where("user_id = ?", userID).Updates(map[string]any{
		"balance":   decimal.NewFromInt(balance),
		"earning":   decimal.NewFromInt(earning),
		"deposit":   decimal.NewFromInt(deposit),
		"withdraws": decimal.NewFromInt(withdraws),
	}).Error)
}

// request performs an HTTP request through the full router. A non-nil user
// gets a valid session cookie. Every request carries a fixed flash cookie
// so tests can read the queue afterwards.
func (e *testEnv) request(method, path string, form url.Values, user *domain.User) *httptest.ResponseRecorder {
	e.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: utils.FlashCookie, Value: "testflash"})
	if user != nil {
		token, err := utils.GenerateJWT(user.ID, testSecret)
		require.NoError(e.t, err)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// flashes drains the queued flash messages for the fixed flash cookie.
func (e *testEnv) flashes() []utils.Flash {
	e.t.Helper()
	val, err := e.rdb.Get(context.Background(), "flash:testflash").Result()
	if err != nil {
		return nil
	}
	var out []utils.Flash
	require.NoError(e.t, json.Unmarshal([]byte(val), &out))
	require.NoError(e.t, e.rdb.Del(context.Background(), "flash:testflash").Err())
	return out
}

func (e *testEnv) lastFlash() utils.Flash {
	e.t.Helper()
	flashes := e.flashes()
	require.NotEmpty(e.t, flashes)
	return flashes[len(flashes)-1]
}
