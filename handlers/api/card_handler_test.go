package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kartim.link/pkg/uploads"
	"kartim.link/repositories"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	repo := repositories.NewCardRepository(path)
	resolver := uploads.NewResolver(filepath.Join(dir, "uploads"))
	h := NewCardHandler(services.NewCardService(repo, resolver))

	app := fiber.New()
	app.Get("/api/cards", h.ListCards)
	app.Get("/api/cards/:slug", h.GetCard)
	app.Get("/api/cards/:slug/vcard", h.GetVCard)
	app.Post("/api/cards", h.CreateCard)
	app.Put("/api/cards/:slug", h.UpdateCard)
	return app
}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestCreateAndGetCard(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/api/cards", "slug=ALI&fullName=Ali+Hasan"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeJSON(t, resp)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "ali", payload["slug"])

	// Slug okuma büyük/küçük harf duyarsız
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ALI", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	card := decodeJSON(t, resp)
	assert.Equal(t, "Ali Hasan", card["fullName"])
	assert.Equal(t, "", card["jobTitle"]) // Opsiyoneller boş string olarak döner
	assert.Equal(t, false, card["rtl"])
}

func TestCreateCardValidationError(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/api/cards", "slug=ali"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	payload := decodeJSON(t, resp)
	assert.NotEmpty(t, payload["error"])
}

func TestCreateCardConflict(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/api/cards", "slug=ali&fullName=Ali"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(formRequest(http.MethodPost, "/api/cards", "slug=ALI&fullName=Diger"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetCardNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateCardPartial(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/api/cards", "slug=ali&fullName=Ali+Hasan&company=My+Company"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(formRequest(http.MethodPut, "/api/cards/ali", "jobTitle=CTO"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ali", nil))
	require.NoError(t, err)
	card := decodeJSON(t, resp)
	// Gönderilmeyen alanlar korunur.
	assert.Equal(t, "CTO", card["jobTitle"])
	assert.Equal(t, "Ali Hasan", card["fullName"])
	assert.Equal(t, "My Company", card["company"])
}

func TestUpdateCardNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPut, "/api/cards/ghost", "jobTitle=CTO"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCardRejectsNonImageUpload(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("slug", "ali"))
	require.NoError(t, w.WriteField("fullName", "Ali"))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="avatarFile"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("duz metin"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/cards", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Depo değişmemiş olmalı
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ali", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCardMultipartWithoutFile(t *testing.T) {
	app := newTestApp(t)

	// avatarFile parçası olmayan multipart form avatarsız kart oluşturur.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("slug", "ali"))
	require.NoError(t, w.WriteField("fullName", "Ali Hasan"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/cards", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ali", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	card := decodeJSON(t, resp)
	assert.Equal(t, "", card["avatarUrl"])
}

func TestCreateCardRejectsMalformedMultipart(t *testing.T) {
	app := newTestApp(t)

	// Boundary bildirilmiş ama gövde multipart değil: dosya yokmuş gibi
	// yutulmamalı, istek 400 ile reddedilmeli.
	req := httptest.NewRequest(http.MethodPost, "/api/cards",
		strings.NewReader("slug=ali&fullName=Ali"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=sinir")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Kart oluşmamış olmalı
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ali", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetVCard(t *testing.T) {
	app := newTestApp(t)

	body := "slug=ali&fullName=Ali+Hasan&company=My+Company&phone=%2B97330000000"
	resp, err := app.Test(formRequest(http.MethodPost, "/api/cards", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/cards/ali/vcard", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/vcard")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Ali_Hasan.vcf")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Ali Hasan"), text)
	assert.Contains(t, text, "ORG:My Company")
	assert.True(t, strings.HasSuffix(text, "END:VCARD"), text)
}
