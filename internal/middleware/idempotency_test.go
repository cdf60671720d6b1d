package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/grana-app/grana/internal/auth"
	"github.com/grana-app/grana/internal/logging"
)

const idempotencyTestSecret = "test-secret"

// setupIdempotencyApp mirrors the production chain: bearer auth first, then
// the idempotency middleware, then a counting handler.
func setupIdempotencyApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	logger := logging.Discard()

	calls := 0
	app.Post("/resource",
		BearerAuth([]byte(idempotencyTestSecret)),
		Idempotency(cache, time.Minute, logger),
		func(c *fiber.Ctx) error {
			calls++
			owner, err := CallerID(c)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": calls, "owner": owner})
		})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, cleanup
}

func idempotencyBearer(t *testing.T, userID int64) string {
	t.Helper()
	token, err := auth.Sign(userID, []byte(idempotencyTestSecret), time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func postResource(t *testing.T, app *fiber.App, bearer, key string) (int, map[string]int64) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/resource", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, bearer)
	}
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]int64
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestIdempotencyHeaderOptional(t *testing.T) {
	app, cleanup := setupIdempotencyApp(t)
	defer cleanup()
	bearer := idempotencyBearer(t, 1)

	// Two keyless requests both reach the handler.
	for want := int64(1); want <= 2; want++ {
		status, body := postResource(t, app, bearer, "")
		if status != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
		if body["call"] != want {
			t.Fatalf("expected call %d, got %d", want, body["call"])
		}
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, cleanup := setupIdempotencyApp(t)
	defer cleanup()
	bearer := idempotencyBearer(t, 1)

	status1, body1 := postResource(t, app, bearer, "abc123")
	status2, body2 := postResource(t, app, bearer, "abc123")

	if status2 != status1 {
		t.Fatalf("replayed status differs: %d vs %d", status1, status2)
	}
	if body1["call"] != body2["call"] {
		t.Fatalf("expected replayed body, got calls %d and %d", body1["call"], body2["call"])
	}
}

func TestIdempotencyRequiresAuthentication(t *testing.T) {
	app, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	// Seed the cache with an authenticated caller's response.
	status, _ := postResource(t, app, idempotencyBearer(t, 1), "shared-key")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	// Reusing the key without a token must fail the bearer check, never
	// replay the stored response.
	status, body := postResource(t, app, "", "shared-key")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if body["call"] != 0 {
		t.Fatalf("unauthenticated request received a cached body: %+v", body)
	}
}

func TestIdempotencyKeyScopedPerCaller(t *testing.T) {
	app, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	_, body1 := postResource(t, app, idempotencyBearer(t, 1), "shared-key")
	status, body2 := postResource(t, app, idempotencyBearer(t, 2), "shared-key")

	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 for second caller, got %d", status)
	}
	if body2["owner"] != 2 {
		t.Fatalf("second caller received another user's response: %+v", body2)
	}
	if body2["call"] == body1["call"] {
		t.Fatalf("same key across callers must not replay, got call %d twice", body1["call"])
	}
}

func TestIdempotencyGetBypassed(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Get("/resource",
		BearerAuth([]byte(idempotencyTestSecret)),
		Idempotency(cache, time.Minute, logging.Discard()),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

	req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
	req.Header.Set(fiber.HeaderAuthorization, idempotencyBearer(t, 1))
	req.Header.Set(idempotencyKeyHeader, "abc123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
