package webapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"text-redactor/internal/config"
	"text-redactor/internal/detect"
	"text-redactor/internal/dictionary"
	"text-redactor/internal/logger"
	"text-redactor/internal/redactor"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()
	dict, err := dictionary.Load(dictionary.Overrides{})
	if err != nil {
		t.Fatalf("dictionary.Load: %v", err)
	}
	cfg := &config.Config{
		Port:          8080,
		BindAddress:   "127.0.0.1",
		LogLevel:      "error",
		APIToken:      token,
		MaxInputBytes: 1 << 20,
	}
	log := logger.New("webapi", "error")
	red := redactor.New(detect.New(dict), nil, nil, log)
	return New(cfg, red, dict, nil, log)
}

func postJSON(t *testing.T, h http.Handler, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProcessEndpoint_MasksEmail(t *testing.T) {
	s := newTestServer(t, "")
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{
		"text": "Contact john@example.com today.",
		"mode": "mask",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RedactedText != "Contact [EMAIL_ADDRESS] today." {
		t.Errorf("redactedText: %q", resp.RedactedText)
	}
	if resp.RequestID == "" {
		t.Error("requestId missing")
	}
	if resp.Stats.Total != 1 {
		t.Errorf("stats.total: got %d, want 1", resp.Stats.Total)
	}
	if resp.Stats.ByType["EMAIL_ADDRESS"] != 1 {
		t.Errorf("stats.byType[EMAIL_ADDRESS]: got %d, want 1", resp.Stats.ByType["EMAIL_ADDRESS"])
	}
	if _, ok := resp.Stats.ByType["PHONE_NUMBER"]; !ok {
		t.Error("stats.byType should list every type, including zero counts")
	}
	if resp.Similarity < 0 || resp.Similarity > 100 {
		t.Errorf("similarity out of range: %f", resp.Similarity)
	}
}

func TestProcessEndpoint_DefaultModeIsMask(t *testing.T) {
	s := newTestServer(t, "")
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{
		"text": "ip 10.0.0.1",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RedactedText != "ip [IP_ADDRESS]" {
		t.Errorf("redactedText: %q", resp.RedactedText)
	}
}

func TestProcessEndpoint_EmptyText(t *testing.T) {
	s := newTestServer(t, "")
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{"text": "   "}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestProcessEndpoint_UnknownMode(t *testing.T) {
	s := newTestServer(t, "")
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{
		"text": "hello",
		"mode": "scramble",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestProcessEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/process", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestProcessEndpoint_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, "")
	s.cfg.MaxInputBytes = 64

	big := strings.Repeat("a", 256)
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{"text": big}, nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

func TestProcessEndpoint_ClientRequestIDEchoed(t *testing.T) {
	s := newTestServer(t, "")
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{"text": "hello world"}, map[string]string{
		"X-Request-ID": "req-42",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RequestID != "req-42" {
		t.Errorf("requestId: got %q, want req-42", resp.RequestID)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("response header X-Request-ID: got %q", got)
	}
}

func TestFileEndpoint_ProcessesUpload(t *testing.T) {
	s := newTestServer(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("mode", "mask"); err != nil {
		t.Fatal(err)
	}
	fw, err := mw.CreateFormFile("file", "note.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("Mail bob@corp.io please.")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/process/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RedactedText != "Mail [EMAIL_ADDRESS] please." {
		t.Errorf("redactedText: %q", resp.RedactedText)
	}
}

func TestFileEndpoint_RejectsInvalidUTF8(t *testing.T) {
	s := newTestServer(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "blob.bin")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte{0xff, 0xfe, 0x00, 0x80}); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/process/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestFileEndpoint_MissingFileField(t *testing.T) {
	s := newTestServer(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("mode", "mask"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/process/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp struct {
		Status     string `json:"status"`
		Dictionary struct {
			Names     int `json:"names"`
			Locations int `json:"locations"`
		} `json:"dictionary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "running" {
		t.Errorf("status field: %q", resp.Status)
	}
	if resp.Dictionary.Names == 0 || resp.Dictionary.Locations == 0 {
		t.Error("dictionary counts should be non-zero")
	}
}

func TestAuth_RequiredForProcessing(t *testing.T) {
	s := newTestServer(t, "hunter2")

	// No token → 401.
	rec := postJSON(t, s.Router(), "/v1/process", map[string]string{"text": "hello"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", rec.Code)
	}

	// Wrong token → 401.
	rec = postJSON(t, s.Router(), "/v1/process", map[string]string{"text": "hello"}, map[string]string{
		"Authorization": "Bearer wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: got %d, want 401", rec.Code)
	}

	// Correct token → 200.
	rec = postJSON(t, s.Router(), "/v1/process", map[string]string{"text": "hello"}, map[string]string{
		"Authorization": "Bearer hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want 200", rec.Code)
	}

	// Status stays open without a token.
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("status without token: got %d, want 200", rr.Code)
	}
}

func TestRootRedirectsToUI(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status: got %d, want 307", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/ui/" {
		t.Errorf("Location: got %q, want /ui/", loc)
	}
}

func TestUIServesEmbeddedPage(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/ui/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Text Redactor") {
		t.Error("embedded page missing expected title")
	}
}

func TestUIPageHasFileInputAndEntityTable(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/ui/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<input type="file"`,
		`id="entity-table"`,
		`<th>Type</th><th>Text</th><th>Start</th><th>End</th>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("embedded page missing %q", want)
		}
	}
}
