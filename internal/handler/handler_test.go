package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/handler"
	"github.com/lowkeylabs/mindful-recs/internal/preference"
	"github.com/lowkeylabs/mindful-recs/internal/router"
	"github.com/lowkeylabs/mindful-recs/internal/service"
)

type stubService struct {
	recommendFn func(ctx context.Context, req service.RecommendRequest) (*domain.RecommendationResult, error)
	registerFn  func(ctx context.Context, req service.RegisterRequest) (string, error)
	loginFn     func(ctx context.Context, email, password string) (*domain.User, error)
	batchFn     func(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	logFn       func(ctx context.Context, ev preference.WatchEvent) (int, error)
}

func (s *stubService) Recommend(ctx context.Context, req service.RecommendRequest) (*domain.RecommendationResult, error) {
	return s.recommendFn(ctx, req)
}

func (s *stubService) UserState(ctx context.Context, userID string, fctx domain.ContextFeatures, rawEmotion map[string]any) (domain.UserState, error) {
	return domain.UserState{UserID: userID, Context: fctx}, nil
}

func (s *stubService) LogInteraction(ctx context.Context, ev preference.WatchEvent) (int, error) {
	if s.logFn != nil {
		return s.logFn(ctx, ev)
	}
	return 1, nil
}

func (s *stubService) BatchRecommend(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	if s.batchFn != nil {
		return s.batchFn(ctx, page, limit)
	}
	return &domain.BatchResponse{Page: page, Limit: limit}, nil
}

func (s *stubService) Register(ctx context.Context, req service.RegisterRequest) (string, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return "u_6", nil
}

func (s *stubService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, email, password)
	}
	return &domain.User{ID: "u_1", Email: email}, nil
}

func (s *stubService) RefreshCatalog(ctx context.Context) error { return nil }

func setupRouter(svc *stubService) http.Handler {
	h := handler.NewHandler(svc)
	return router.Setup(h, zerolog.Nop(), 5*time.Second)
}

func doJSON(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func okRecommendFn(ctx context.Context, req service.RecommendRequest) (*domain.RecommendationResult, error) {
	return &domain.RecommendationResult{
		UserID: req.UserID,
		Recommendations: []domain.RankedRecommendation{
			{ItemID: "i_1", Title: "The Avengers", Category: "action", Score: 1.25, Type: domain.RecTypeRecommendation},
		},
		Meta: domain.RecommendationMeta{DetectedEmotion: "neutral"},
	}, nil
}

func TestRecommendEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{recommendFn: okRecommendFn})

	rec := doJSON(t, srv, http.MethodPost, "/recommend",
		`{"user_id":"u_1","context":{"time_of_day":"evening","session_minutes":30}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UserID          string                        `json:"user_id"`
		Recommendations []domain.RankedRecommendation `json:"recommendations"`
		CacheHit        bool                          `json:"cache_hit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.UserID != "u_1" {
		t.Errorf("user_id = %q, want u_1", resp.UserID)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].ItemID != "i_1" {
		t.Errorf("unexpected recommendations: %+v", resp.Recommendations)
	}
	if resp.CacheHit {
		t.Error("cache_hit = true on first response")
	}
}

func TestRecommendValidation(t *testing.T) {
	srv := setupRouter(&stubService{recommendFn: okRecommendFn})

	cases := []struct {
		name string
		body string
	}{
		{"missing user id", `{"context":{"time_of_day":"evening"}}`},
		{"bad time of day", `{"user_id":"u_1","context":{"time_of_day":"midnight"}}`},
		{"empty time of day", `{"user_id":"u_1","context":{}}`},
		{"invalid json", `{user_id}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/recommend", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRecommendServiceFailure(t *testing.T) {
	srv := setupRouter(&stubService{
		recommendFn: func(ctx context.Context, req service.RecommendRequest) (*domain.RecommendationResult, error) {
			return nil, domain.ErrRecommendationFailed
		},
	})

	rec := doJSON(t, srv, http.MethodPost, "/recommend",
		`{"user_id":"u_1","context":{"time_of_day":"night"}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recommendation_failed") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestUserStateEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{recommendFn: okRecommendFn})

	rec := doJSON(t, srv, http.MethodPost, "/users/u_2/state",
		`{"context":{"time_of_day":"morning"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var st domain.UserState
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st.UserID != "u_2" {
		t.Errorf("user id = %q, want u_2", st.UserID)
	}
}

func TestLogInteractionEndpoint(t *testing.T) {
	var got preference.WatchEvent
	srv := setupRouter(&stubService{
		recommendFn: okRecommendFn,
		logFn: func(ctx context.Context, ev preference.WatchEvent) (int, error) {
			got = ev
			return 42, nil
		},
	})

	rec := doJSON(t, srv, http.MethodPost, "/interactions",
		`{"user_id":"u_1","item_id":"i_3","emotion":"sad","time_of_day":"night","completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got.UserID != "u_1" || got.ItemID != "i_3" || got.Emotion != "sad" {
		t.Errorf("logged event = %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"total_interactions":42`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/interactions", `{"user_id":"u_1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing item_id: status = %d, want 400", rec.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{recommendFn: okRecommendFn})

	rec := doJSON(t, srv, http.MethodPost, "/auth/register",
		`{"name":"Frank","email":"frank@example.com","password":"secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"user_id":"u_6"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/auth/register", `{"email":"frank@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password: status = %d, want 400", rec.Code)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	srv := setupRouter(&stubService{
		recommendFn: okRecommendFn,
		registerFn: func(ctx context.Context, req service.RegisterRequest) (string, error) {
			return "", domain.ErrEmailTaken
		},
	})

	rec := doJSON(t, srv, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"password123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email_taken") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{
		recommendFn: okRecommendFn,
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if password != "password123" {
				return nil, domain.ErrInvalidCredentials
			}
			return &domain.User{ID: "u_1", Name: "Alice", Email: email}, nil
		},
	})

	rec := doJSON(t, srv, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"user_id":"u_1"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d, want 401", rec.Code)
	}
}

func TestBatchEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{
		recommendFn: okRecommendFn,
		batchFn: func(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
			return &domain.BatchResponse{
				Page: page, Limit: limit, TotalUsers: 5,
				Summary: domain.BatchSummary{SuccessCount: 5},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/recommendations/batch?page=2&limit=3", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"page":2`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	for _, query := range []string{"?page=0", "?page=abc", "?limit=0", "?limit=500"} {
		req := httptest.NewRequest(http.MethodGet, "/recommendations/batch"+query, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupRouter(&stubService{recommendFn: okRecommendFn})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
