package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/events"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/token"
	"storefront-api/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	t      *testing.T
	app    *App
	repo   *repository.Repository
	events *events.MemoryPublisher
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := token.NewManager("router-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	config := &utils.Config{
		App:    utils.AppConfig{Name: "storefront-test", HostURL: "http://shop.test"},
		Upload: utils.UploadConfig{MaxMB: 1, MaxFiles: 4, PublicPath: "/images"},
		Redis:  utils.RedisConfig{RoleTTL: time.Minute},
		Report: utils.ReportConfig{RecentLimit: 5},
	}
	images := storage.NewImageStore(afero.NewMemMapFs(), storage.Options{
		BaseURL:    config.App.HostURL,
		PublicPath: config.Upload.PublicPath,
		MaxBytes:   config.Upload.MaxMB << 20,
		MaxFiles:   config.Upload.MaxFiles,
		Timeout:    5 * time.Second,
	}, zap.NewNop())

	repo := repository.NewMemoryRepository()
	pub := &events.MemoryPublisher{}
	app := Wiring(repo, usecase.Deps{Tokens: tokens, Cache: cache.NewMemoryCache(), Events: pub}, images, config, zap.NewNop())

	return &testServer{t: t, app: app, repo: repo, events: pub, tokens: map[string]string{}}
}

func (s *testServer) do(method, target, email string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	if email != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "email=" + url.QueryEscape(email)
	}

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok, ok := s.tokens[email]; ok {
		req.Header.Set("auth", "Bearer "+tok)
	}

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode envelope: %v (%s)", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func (s *testServer) json(method, target, email string, payload any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		s.t.Fatalf("marshal: %v", err)
	}
	return s.do(method, target, email, bytes.NewReader(raw), "application/json")
}

// login upserts the user over HTTP and keeps the issued token.
func (s *testServer) login(email string) {
	s.t.Helper()
	rec, env := s.json(http.MethodPut, "/user", "", map[string]string{"email": email})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil || auth.Token == "" {
		s.t.Fatalf("login %s: token missing: %v", email, err)
	}
	s.tokens[email] = auth.Token
}

func (s *testServer) admin(email string) {
	s.t.Helper()
	s.login(email)
	if err := s.app.Service.User.SeedAdmins(context.Background(), []string{email}); err != nil {
		s.t.Fatalf("seed admin: %v", err)
	}
}

func productForm(t *testing.T, fields map[string]string, files map[string][]byte, order []string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("field %s: %v", k, err)
		}
	}
	for _, name := range order {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("file %s: %v", name, err)
		}
		fw.Write(files[name])
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(http.MethodGet, "/health", "", nil, "")
	if rec.Code != http.StatusOK || !env.Status {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestIsAdminFollowsPromotion(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")
	s.login("alice@example.com")

	check := func() bool {
		rec, env := s.do(http.MethodGet, "/is-admin/alice@example.com", "", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("is-admin = %d", rec.Code)
		}
		var out struct {
			IsAdmin bool `json:"isAdmin"`
		}
		json.Unmarshal(env.Data, &out)
		return out.IsAdmin
	}

	if check() {
		t.Fatal("alice is admin before promotion")
	}

	rec, _ := s.json(http.MethodPatch, "/make-admin", "root@example.com", map[string]string{"email": "alice@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("make-admin = %d %s", rec.Code, rec.Body.String())
	}
	if !check() {
		t.Fatal("alice is not admin after promotion")
	}

	rec, _ = s.json(http.MethodPatch, "/make-admin", "root@example.com", map[string]string{"email": "ghost@example.com"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("make-admin unknown = %d, want 404", rec.Code)
	}
}

func TestAdminGateBlocksWrites(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")
	s.login("bob@example.com")

	body, ct := productForm(t, map[string]string{"title": "Tee", "price": "10", "category": "tops"},
		map[string][]byte{"tee.png": pngBytes}, []string{"tee.png"})
	rec, env := s.do(http.MethodPost, "/product", "root@example.com", body, ct)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}
	var product struct {
		ID string `json:"id"`
	}
	json.Unmarshal(env.Data, &product)

	// No credential at all.
	rec, _ = s.do(http.MethodDelete, "/product/"+product.ID+"?email=bob@example.com", "", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete = %d, want 401", rec.Code)
	}

	// Valid customer token.
	rec, _ = s.do(http.MethodDelete, "/product/"+product.ID, "bob@example.com", nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer delete = %d, want 403", rec.Code)
	}

	// Admin token presented for another email.
	req := httptest.NewRequest(http.MethodDelete, "/product/"+product.ID+"?email=bob@example.com", nil)
	req.Header.Set("auth", "Bearer "+s.tokens["root@example.com"])
	mismatch := httptest.NewRecorder()
	s.app.Router.ServeHTTP(mismatch, req)
	if mismatch.Code != http.StatusForbidden {
		t.Fatalf("mismatched delete = %d, want 403", mismatch.Code)
	}

	rec, _ = s.do(http.MethodGet, "/get-product/"+product.ID, "", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("product gone after rejected deletes: %d", rec.Code)
	}

	rec, env = s.do(http.MethodDelete, "/product/"+product.ID, "root@example.com", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"deleted_count":1`) {
		t.Fatalf("admin delete = %d %s", rec.Code, rec.Body.String())
	}
	rec, env = s.do(http.MethodDelete, "/product/"+product.ID, "root@example.com", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"deleted_count":0`) {
		t.Fatalf("repeat delete = %d %s", rec.Code, rec.Body.String())
	}
}

func TestProductGalleryUpload(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")

	body, ct := productForm(t,
		map[string]string{"title": "Summer Dress", "price": "19.99", "category": "dresses", "sizes": "S, M,L"},
		map[string][]byte{"front.png": pngBytes, "back.png": pngBytes},
		[]string{"front.png", "back.png"},
	)
	rec, env := s.do(http.MethodPost, "/product", "root@example.com", body, ct)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}

	var product struct {
		Price  float64  `json:"price"`
		Images []string `json:"images"`
		Sizes  []string `json:"sizes"`
	}
	if err := json.Unmarshal(env.Data, &product); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if product.Price != 19.99 || len(product.Images) != 2 || len(product.Sizes) != 3 {
		t.Fatalf("product = %+v", product)
	}
	if !strings.HasPrefix(product.Images[0], "http://shop.test/images/front-") {
		t.Fatalf("first image = %s", product.Images[0])
	}

	// The stored file is served back under /images.
	path := strings.TrimPrefix(product.Images[1], "http://shop.test")
	img := httptest.NewRecorder()
	s.app.Router.ServeHTTP(img, httptest.NewRequest(http.MethodGet, path, nil))
	if img.Code != http.StatusOK || !bytes.Equal(img.Body.Bytes(), pngBytes) {
		t.Fatalf("serve image = %d (%d bytes)", img.Code, img.Body.Len())
	}

	// Projection keeps only the requested fields plus id.
	rec, env = s.do(http.MethodGet, "/products?fields=title", "", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var list struct {
		Data []map[string]any `json:"data"`
	}
	json.Unmarshal(env.Data, &list)
	if len(list.Data) != 1 || len(list.Data[0]) != 2 || list.Data[0]["title"] != "Summer Dress" {
		t.Fatalf("projection = %+v", list.Data)
	}

	rec, _ = s.do(http.MethodGet, "/search?q=dress", "", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search = %d", rec.Code)
	}
}

func TestProductUploadRejectsNonImage(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")

	body, ct := productForm(t,
		map[string]string{"title": "Bad", "price": "1", "category": "misc"},
		map[string][]byte{"a.png": pngBytes, "b.txt": []byte("hello world")},
		[]string{"a.png", "b.txt"},
	)
	rec, _ := s.do(http.MethodPost, "/product", "root@example.com", body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create = %d, want 400", rec.Code)
	}
	if n, _ := s.repo.Product.Count(context.Background(), entity.ProductFilter{}); n != 0 {
		t.Fatalf("products = %d, want 0", n)
	}

	rec, _ = s.do(http.MethodGet, "/get-product/not-a-uuid", "", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id = %d, want 400", rec.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")
	s.login("alice@example.com")
	s.login("bob@example.com")

	order := map[string]any{
		"items":    []map[string]any{{"title": "Summer Dress", "quantity": 1, "price": 19.99}},
		"delivery": map[string]any{"name": "Alice", "phone": "555", "address": "1 Main St"},
		"payment":  map[string]any{"transaction_id": "pi_1"},
		"total":    19.99,
	}

	rec, _ := s.json(http.MethodPost, "/order", "", order)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous order = %d, want 401", rec.Code)
	}

	rec, env := s.json(http.MethodPost, "/order", "alice@example.com", order)
	if rec.Code != http.StatusCreated {
		t.Fatalf("order = %d %s", rec.Code, rec.Body.String())
	}
	var placed struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	json.Unmarshal(env.Data, &placed)
	if placed.Status != "placed" {
		t.Fatalf("status = %s", placed.Status)
	}

	rec, env = s.do(http.MethodGet, "/my-orders", "bob@example.com", nil, "")
	var mine []json.RawMessage
	if len(env.Data) > 0 {
		json.Unmarshal(env.Data, &mine)
	}
	if rec.Code != http.StatusOK || len(mine) != 0 {
		t.Fatalf("bob my-orders = %d %s", rec.Code, env.Data)
	}
	rec, _ = s.do(http.MethodGet, "/order/"+placed.ID, "bob@example.com", nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bob reads alice order = %d, want 403", rec.Code)
	}

	rec, _ = s.json(http.MethodPatch, "/update-order-status/"+placed.ID, "alice@example.com", map[string]string{"status": "processing"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer status update = %d, want 403", rec.Code)
	}

	rec, _ = s.json(http.MethodPatch, "/update-order-status/"+placed.ID, "root@example.com", map[string]string{"status": "Delivered"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("skip to Delivered = %d, want 400", rec.Code)
	}
	rec, _ = s.json(http.MethodPatch, "/update-order-status/"+placed.ID, "root@example.com", map[string]string{"status": "processing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("to processing = %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(http.MethodGet, "/orders?status=processing", "root@example.com", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), placed.ID) {
		t.Fatalf("admin orders = %d %s", rec.Code, env.Data)
	}

	rec, env = s.do(http.MethodGet, "/report", "root@example.com", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"orders":1`) {
		t.Fatalf("report = %d %s", rec.Code, env.Data)
	}

	if n := len(s.events.Events()); n != 2 {
		t.Fatalf("events = %d, want 2", n)
	}
}

func TestSettingsSections(t *testing.T) {
	s := newTestServer(t)
	s.admin("root@example.com")

	rec, _ := s.json(http.MethodPatch, "/settings/display", "root@example.com", map[string]bool{"show_slider": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("display = %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = s.json(http.MethodPatch, "/settings/footer", "root@example.com", map[string]string{"x": "y"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown section = %d, want 404", rec.Code)
	}

	rec, _ = s.json(http.MethodPatch, "/settings/navbar", "root@example.com", map[string]string{"navbar_title": "Shop", "rogue": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field = %d, want 400", rec.Code)
	}

	rec, env := s.do(http.MethodGet, "/settings", "", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get settings = %d", rec.Code)
	}
	var settings struct {
		NavbarTitle string                 `json:"navbar_title"`
		Display     entity.DisplaySettings `json:"display"`
	}
	json.Unmarshal(env.Data, &settings)
	if settings.NavbarTitle != "" || settings.Display.ShowSlider || !settings.Display.ShowCategories {
		t.Fatalf("settings = %+v", settings)
	}
}
