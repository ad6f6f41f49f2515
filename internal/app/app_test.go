package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/findrival/internal/config"
	"github.com/riskibarqy/findrival/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "FindRival API",
		ServiceVersion:     "1.0.0",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		ShutdownTimeout:    time.Second,
		CORSAllowedOrigins: []string{"*"},
		StoreBackend:       config.StoreMemory,
		TeamListLimit:      500,
		AuthCacheTTL:       time.Minute,
		PushWorkers:        2,
		PushQueueSize:      16,
		PushTimeout:        time.Second,
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(context.Background()); err != nil {
			t.Fatalf("close app: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	body := `{"owner_uid":"u1","name":"Harbour FC","sport":"soccer","location":{"type":"Point","coordinates":[0,0]}}`
	req := httptest.NewRequest(http.MethodPost, "/teams", strings.NewReader(body))
	a.Server().Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server().Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy memory store, got %d", rec.Code)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNew_FirebaseInitFailureIsNotFatal(t *testing.T) {
	cfg := memoryConfig()
	cfg.FirebaseEnabled = true
	cfg.FirebaseCredentialsB64 = "%%% not base64 %%%"

	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("expected firebase failure to be tolerated, got %v", err)
	}
	defer a.Close(context.Background())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	a.Server().Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous access to succeed, got %d", rec.Code)
	}
}
