package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-api/internal/almanac"
	"saju-api/internal/domain"
	"saju-api/internal/service"
)

type brokenAlmanac struct{}

func (brokenAlmanac) Pillars(domain.BirthMoment) (almanac.Reading, error) {
	return almanac.Reading{Year: "xx", Month: "xx", Day: "xx", Hour: "xx"}, nil
}

func newTestRouter(t *testing.T, alm almanac.Almanac, jwtSvc *service.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	charts := service.NewChartService(service.NewCalendarResolver(alm), service.NewMemoryChartCache(time.Minute), logger)
	authJWT := jwtSvc
	if authJWT == nil {
		authJWT = service.NewJWTService("secret", "saju-api", time.Minute)
	}
	clients := service.NewClientAuthService(logger, nil, authJWT)
	return NewRouter(logger, NewAuthHandler(logger, clients, authJWT), NewChartHandler(logger, charts), jwtSvc)
}

func doJSON(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateChart_OK(t *testing.T) {
	r := newTestRouter(t, almanac.NewLunarAlmanac(), nil)
	rec := doJSON(r, http.MethodPost, "/v1/charts", `{"year":2000,"month":1,"day":1,"hour":12,"minute":0}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Pillars map[string]struct {
			Combined string `json:"combined"`
		} `json:"pillars"`
		Analysis struct {
			Balance   map[string]int `json:"balance"`
			DayMaster string         `json:"day_master"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Pillars["year"].Combined != "己卯" || body.Pillars["hour"].Combined != "戊午" {
		t.Fatalf("unexpected pillars: %s", rec.Body.String())
	}
	if body.Analysis.DayMaster != "earth" {
		t.Fatalf("expected earth day master, got %q", body.Analysis.DayMaster)
	}
	total := 0
	for _, v := range body.Analysis.Balance {
		total += v
	}
	if total != 100 {
		t.Fatalf("expected balance to sum to 100, got %d", total)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestCreateChart_MidnightIsNotMissing(t *testing.T) {
	r := newTestRouter(t, almanac.NewLunarAlmanac(), nil)
	rec := doJSON(r, http.MethodPost, "/v1/charts", `{"year":2000,"month":1,"day":1,"hour":0,"minute":0}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateChart_BadRequests(t *testing.T) {
	r := newTestRouter(t, almanac.NewLunarAlmanac(), nil)

	rec := doJSON(r, http.MethodPost, "/v1/charts", `{"year":2000,"month":1}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}

	rec = doJSON(r, http.MethodPost, "/v1/charts", `{"year":2000,"month":13,"day":1,"hour":0,"minute":0}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["field"] != "month" {
		t.Fatalf("expected field month, got %q", body["field"])
	}
}

func TestCreateChart_BackendFailureIsBadGateway(t *testing.T) {
	r := newTestRouter(t, brokenAlmanac{}, nil)
	rec := doJSON(r, http.MethodPost, "/v1/charts", `{"year":2000,"month":1,"day":1,"hour":12,"minute":0}`, "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestCreateCompatibility_OK(t *testing.T) {
	r := newTestRouter(t, almanac.NewLunarAlmanac(), nil)
	payload := `{"a":{"year":2000,"month":1,"day":1,"hour":12,"minute":0},"b":{"year":1988,"month":11,"day":3,"hour":21,"minute":15}}`
	rec := doJSON(r, http.MethodPost, "/v1/compatibility", payload, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Result struct {
			Score        int    `json:"score"`
			Relationship string `json:"relationship"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Result.Score < 0 || body.Result.Score > 100 || body.Result.Relationship == "" {
		t.Fatalf("unexpected result: %s", rec.Body.String())
	}

	rec = doJSON(r, http.MethodPost, "/v1/compatibility", `{"a":{"year":2000,"month":1,"day":1,"hour":12,"minute":0}}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without b, got %d", rec.Code)
	}
}

func TestV1Routes_RequireTokenWhenGuarded(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "saju-api", time.Minute)
	r := newTestRouter(t, almanac.NewLunarAlmanac(), jwtSvc)
	body := `{"year":2000,"month":1,"day":1,"hour":12,"minute":0}`

	if rec := doJSON(r, http.MethodPost, "/v1/charts", body, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := jwtSvc.Issue("mobile-app")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if rec := doJSON(r, http.MethodPost, "/v1/charts", body, token.AccessToken); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, almanac.NewLunarAlmanac(), nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("expected request id to be echoed, got %q", rec.Header().Get(requestIDHeader))
	}
}
