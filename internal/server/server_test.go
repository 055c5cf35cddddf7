package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/health-planner/internal/auth"
	"github.com/sakif/health-planner/internal/config"
)

const testSecret = "test-secret-0123456789"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Port:           8080,
		DBPath:         filepath.Join(dir, "db", "planner.db"),
		JWTSecret:      testSecret,
		FoodsPath:      filepath.Join(dir, "foods.csv"),
		ExercisesPath:  filepath.Join(dir, "exercises.csv"),
		PasswordScheme: auth.SchemeSHA256,
		RandomSeed:     1,
	}
	s, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// registerAndLogin returns a session token for a fresh account.
func registerAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/register",
		map[string]string{"username": username, "password": "hunter22", "fullName": "Test User"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/login",
		map[string]string{"username": username, "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, body.Token)
	return body.Token
}

var validProfile = map[string]any{
	"age":            30,
	"sex":            "male",
	"heightCm":       175,
	"weightKg":       70,
	"activityLevel":  "sedentary",
	"goal":           "lose weight",
	"dietPreference": "vegan",
}

func TestAccountFlow(t *testing.T) {
	h := newTestServer(t)
	token := registerAndLogin(t, h, "ana")

	rec := do(t, h, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "ana", me["username"])
	assert.Equal(t, "Test User", me["fullName"])
	assert.NotContains(t, me, "passwordDigest")

	// No profile yet: an empty state, not an error.
	rec = do(t, h, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"profile":null,"complete":false}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/plan", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/profile", validProfile, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		Profile struct {
			Sex            string `json:"sex"`
			ActivityLevel  string `json:"activityLevel"`
			Goal           string `json:"goal"`
			DietPreference string `json:"dietPreference"`
		} `json:"profile"`
		Complete bool `json:"complete"`
	}](t, rec)
	assert.True(t, got.Complete)
	assert.Equal(t, "Male", got.Profile.Sex)
	assert.Equal(t, "Sedentary", got.Profile.ActivityLevel)
	assert.Equal(t, "Lose weight", got.Profile.Goal)
	assert.Equal(t, "Vegan", got.Profile.DietPreference)

	rec = do(t, h, http.MethodGet, "/api/plan", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	plan := decode[struct {
		Summary struct {
			BMR            int    `json:"bmr"`
			TargetCalories int    `json:"targetCalories"`
			Category       string `json:"category"`
		} `json:"summary"`
		Meals     []map[string]any `json:"meals"`
		Exercises struct {
			Items   []map[string]any `json:"items"`
			Matched bool             `json:"matched"`
		} `json:"exercises"`
	}](t, rec)
	assert.Equal(t, 1649, plan.Summary.BMR)
	assert.Equal(t, 1479, plan.Summary.TargetCalories)
	assert.Equal(t, "Normal", plan.Summary.Category)
	assert.Len(t, plan.Meals, 4)
	assert.True(t, plan.Exercises.Matched)
	assert.NotEmpty(t, plan.Exercises.Items)
}

func TestProgressFlow(t *testing.T) {
	h := newTestServer(t)
	token := registerAndLogin(t, h, "ben")

	rec := do(t, h, http.MethodGet, "/api/progress", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/progress",
		map[string]any{"date": "2024-03-02", "weightKg": 70.5, "completed": true, "notes": "run"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/progress",
		map[string]any{"date": "2024-03-01", "caloriesConsumed": 1800}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/progress", map[string]any{"date": "03/01/2024"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/progress", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]struct {
		Date             string   `json:"date"`
		WeightKg         *float64 `json:"weightKg"`
		CaloriesConsumed *int     `json:"caloriesConsumed"`
		Completed        bool     `json:"completed"`
	}](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-03-01", entries[0].Date)
	assert.Nil(t, entries[0].WeightKg)
	require.NotNil(t, entries[0].CaloriesConsumed)
	assert.Equal(t, 1800, *entries[0].CaloriesConsumed)
	assert.Equal(t, "2024-03-02", entries[1].Date)
	require.NotNil(t, entries[1].WeightKg)
	assert.InDelta(t, 70.5, *entries[1].WeightKg, 1e-9)
	assert.True(t, entries[1].Completed)

	// Another user sees only their own log.
	other := registerAndLogin(t, h, "cai")
	rec = do(t, h, http.MethodGet, "/api/progress", nil, other)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRegisterAndLoginErrors(t *testing.T) {
	h := newTestServer(t)
	registerAndLogin(t, h, "dee")

	rec := do(t, h, http.MethodPost, "/api/register",
		map[string]string{"username": "dee", "password": "another1"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/register", map[string]string{"username": "", "password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	wrongPassword := do(t, h, http.MethodPost, "/api/login",
		map[string]string{"username": "dee", "password": "nope"}, "")
	unknownUser := do(t, h, http.MethodPost, "/api/login",
		map[string]string{"username": "nobody", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestBadRequestBodies(t *testing.T) {
	h := newTestServer(t)
	token := registerAndLogin(t, h, "eli")

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"age":`},
		{"unknown field", `{"age":30,"shoeSize":44}`},
		{"age out of range", map[string]any{
			"age": 5, "sex": "female", "heightCm": 160, "weightKg": 55,
			"activityLevel": "Sedentary", "goal": "Maintain", "dietPreference": "Vegan",
		}},
		{"unknown goal", map[string]any{
			"age": 40, "sex": "female", "heightCm": 160, "weightKg": 55,
			"activityLevel": "Sedentary", "goal": "Run a marathon", "dietPreference": "Vegan",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/api/profile", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "validation_error", decode[map[string]any](t, rec)["error"])
		})
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	h := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPut, "/api/profile"},
		{http.MethodGet, "/api/plan"},
		{http.MethodGet, "/api/progress"},
		{http.MethodPost, "/api/progress"},
		{http.MethodPost, "/api/catalog/reload"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := do(t, h, rt.method, rt.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = do(t, h, rt.method, rt.path, nil, "not-a-token")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	h := newTestServer(t)
	registerAndLogin(t, h, "fay")

	rec := do(t, h, http.MethodPost, "/api/login",
		map[string]string{"username": "fay", "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.Equal(t, int(auth.DefaultSessionTTL.Seconds()), session.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(session)
	me := httptest.NewRecorder()
	h.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)

	rec = do(t, h, http.MethodPost, "/api/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, auth.CookieName, cleared[0].Name)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet,
		"/api/metrics?age=30&sex=Male&height_cm=175&weight_kg=70&activity_level=Sedentary&goal=Lose+weight&diet_pref=Vegan",
		nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	plan := decode[struct {
		Summary struct {
			BMR  int `json:"bmr"`
			TDEE int `json:"tdee"`
		} `json:"summary"`
		Foods []map[string]any `json:"foods"`
	}](t, rec)
	assert.Equal(t, 1649, plan.Summary.BMR)
	assert.Equal(t, 1979, plan.Summary.TDEE)
	assert.NotEmpty(t, plan.Foods)

	tests := []struct {
		name, query, field string
	}{
		{"age not a number", "age=thirty&sex=Male&height_cm=175&weight_kg=70&activity_level=Sedentary&goal=Maintain&diet_pref=Vegan", "age"},
		{"height missing", "age=30&sex=Male&weight_kg=70&activity_level=Sedentary&goal=Maintain&diet_pref=Vegan", "height_cm"},
		{"weight out of range", "age=30&sex=Male&height_cm=175&weight_kg=500&activity_level=Sedentary&goal=Maintain&diet_pref=Vegan", "weightKg"},
		{"sex blank", "age=30&height_cm=175&weight_kg=70&activity_level=Sedentary&goal=Maintain&diet_pref=Vegan", "sex"},
		{"unknown activity", "age=30&sex=Male&height_cm=175&weight_kg=70&activity_level=Couch&goal=Maintain&diet_pref=Vegan", "activityLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/metrics?"+tt.query, nil, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.field, decode[map[string]any](t, rec)["field"])
		})
	}
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/catalog/foods", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 6)

	rec = do(t, h, http.MethodGet, "/api/catalog/exercises", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, rec))

	token := registerAndLogin(t, h, "gus")
	rec = do(t, h, http.MethodPost, "/api/catalog/reload", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	counts := decode[map[string]int](t, rec)
	assert.Equal(t, 6, counts["foods"])
}

func TestNew_RejectsShortSecret(t *testing.T) {
	dir := t.TempDir()
	_, err := New(config.Config{
		DBPath:    filepath.Join(dir, "planner.db"),
		JWTSecret: "short",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
