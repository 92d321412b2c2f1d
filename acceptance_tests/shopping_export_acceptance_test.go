package acceptance_tests

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodgram/internal/app"
	"foodgram/internal/config"

	"github.com/goccy/go-json"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("Failed to read response: %v", err)
	}
	return resp, data
}

func (c *client) mustCall(method, path string, body any, status int, out any) {
	c.t.Helper()
	resp, data := c.call(method, path, body)
	if resp.StatusCode != status {
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, status, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			c.t.Fatalf("Failed to decode %s: %v", data, err)
		}
	}
}

// TestShoppingListExport drives the whole flow over HTTP: catalogue
// import, sign up, recipes, cart, download and export metrics.
func TestShoppingListExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fontPath, _ := filepath.Abs(filepath.Join("..", "assets", "fonts", "DejaVuSansCondensed.ttf"))

	cfg := &config.Config{
		DatabasePath:         filepath.Join(dir, "foodgram.db"),
		MediaDir:             filepath.Join(dir, "media"),
		JWTSecret:            "acceptance",
		TokenTTL:             time.Hour,
		PDFFontPath:          fontPath,
		PDFFontSize:          14,
		PDFLineHeight:        25,
		MetricsRetentionDays: 30,
	}
	application, err := app.NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer application.Close()

	catalogue := filepath.Join(dir, "ingredients.json")
	if err := os.WriteFile(catalogue, []byte(`[
		{"name": "Сахар", "measurement_unit": "г"},
		{"name": "Соль", "measurement_unit": "г"}
	]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := application.LoadIngredients(ctx, catalogue); err != nil {
		t.Fatalf("LoadIngredients failed: %v", err)
	}

	srv := httptest.NewServer(application.Handler(nil))
	defer srv.Close()
	c := &client{t: t, base: srv.URL}

	c.mustCall(http.MethodPost, "/api/users/", map[string]string{
		"email": "cook@example.com", "username": "cook", "first_name": "Иван", "last_name": "Петров", "password": "s3cret-pass",
	}, http.StatusCreated, nil)
	var login struct {
		AuthToken string `json:"auth_token"`
	}
	c.mustCall(http.MethodPost, "/api/auth/token/login/", map[string]string{
		"email": "cook@example.com", "password": "s3cret-pass",
	}, http.StatusOK, &login)
	c.token = login.AuthToken

	var ingredients []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	c.mustCall(http.MethodGet, "/api/ingredients/", nil, http.StatusOK, &ingredients)
	ids := map[string]int64{}
	for _, ing := range ingredients {
		ids[ing.Name] = ing.ID
	}

	// Recipe A: sugar 100 g. Recipe B: sugar 50 g, salt 5 g.
	recipes := []map[string]any{
		{"name": "A", "ingredients": []map[string]int64{{"id": ids["Сахар"], "amount": 100}}},
		{"name": "B", "ingredients": []map[string]int64{{"id": ids["Сахар"], "amount": 50}, {"id": ids["Соль"], "amount": 5}}},
	}
	for _, r := range recipes {
		r["text"], r["image"], r["cooking_time"] = "<p>Cook.</p>", pngDataURI, 15
		var created struct {
			ID int64 `json:"id"`
		}
		c.mustCall(http.MethodPost, "/api/recipes/", r, http.StatusCreated, &created)
		c.mustCall(http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart/", created.ID), nil, http.StatusCreated, nil)
	}

	resp, body := c.call(http.MethodGet, "/api/recipes/download_shopping_cart/?format=txt", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("txt download: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if string(body) != "Сахар (г) — 150\nСоль (г) — 5\n" {
		t.Errorf("Unexpected shopping list %q", body)
	}

	resp, body = c.call(http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("Expected a PDF, got %d: %.64s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="shopping_list.pdf"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}
	if n := bytes.Count(body, []byte("<</Type /Page\n")); n != 1 {
		t.Errorf("Expected a one-page PDF, got %d pages", n)
	}

	usage, err := application.Metrics().GetDailyUsage(ctx, 1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].Exports != 2 || usage[0].TotalLines != 4 {
		t.Errorf("Unexpected export usage %+v", usage)
	}

	_, metricsBody := c.call(http.MethodGet, "/metrics", nil)
	if !strings.Contains(string(metricsBody), `foodgram_shopping_exports_total{format="txt"}`) {
		t.Error("Expected the export counter on /metrics")
	}
}
