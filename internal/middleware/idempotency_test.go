package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/banco-digital/banco_core/internal/logging"
)

func setupIdempotencyApp(t *testing.T) *fiber.App {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	calls := 0
	app.Post("/deposit", func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": calls})
	})
	app.Get("/balance", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func TestIdempotencyRequiresHeaderOnPost(t *testing.T) {
	app := setupIdempotencyApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/deposit", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencySkipsReads(t *testing.T) {
	app := setupIdempotencyApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}

func TestIdempotencyReplaysFirstResponse(t *testing.T) {
	app := setupIdempotencyApp(t)

	doPost := func() (int, string) {
		req := httptest.NewRequest(fiber.MethodPost, "/deposit", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "dep-1")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode, string(body)
	}

	firstStatus, firstBody := doPost()
	if firstStatus != fiber.StatusCreated {
		t.Fatalf("expected %d got %d", fiber.StatusCreated, firstStatus)
	}

	secondStatus, secondBody := doPost()
	if secondStatus != firstStatus || secondBody != firstBody {
		t.Fatalf("duplicate not replayed: %d %q vs %d %q", firstStatus, firstBody, secondStatus, secondBody)
	}
}
