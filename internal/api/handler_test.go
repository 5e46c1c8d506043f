package api

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finclaro/statement-analyzer/internal/pipeline"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	h := &Handler{
		Analyzer: pipeline.New(nil, nil),
		Logger:   zap.NewNop(),
	}
	h.Register(app)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
}

func TestAnalyzeRequiresInput(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeWithTextField(t *testing.T) {
	app := setupTestApp()

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("text", `RESUMEN DE CARGOS Y ABONOS
$1,500.00
$480.23
$100.00
$0.00
$150.00
$24.00
$3,000.00
$1,919.67
DESGLOSE DE MOVIMIENTOS
15-ENE-2024 16-ENE-2024 SUPERMERCADO XYZ +$123.45
`))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result AnalyzeResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Statement)
	assert.NotEmpty(t, result.RequestID)
	assert.Len(t, result.Statement.Movements, 1)
	assert.Equal(t, "SUPERMERCADO XYZ", result.Statement.Movements[0].Description)
	assert.Empty(t, result.Statement.Summary.UnresolvedFields())
}

func TestAnalyzeRejectsNonPDFUpload(t *testing.T) {
	app := setupTestApp()

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "statement.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
