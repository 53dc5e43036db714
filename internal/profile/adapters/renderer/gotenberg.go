package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"devprofile/internal/profile/ports/services"
	"devprofile/internal/profile/resilience"
	"devprofile/pkg/logger"
)

const (
	convertHTMLPath = "/forms/chromium/convert/html"
	operationRender = "RenderPDF"
	// maxPDFSize ограничивает чтение ответа.
	maxPDFSize = 32 << 20
)

// GotenbergRenderer отправляет HTML в Gotenberg и возвращает PDF.
type GotenbergRenderer struct {
	baseURL    string
	client     *http.Client
	resilience *resilience.ServiceResilience
}

var _ services.PDFRenderer = (*GotenbergRenderer)(nil)

// NewGotenbergRenderer создает клиента Gotenberg. Вызовы защищены предохранителем и повторами.
func NewGotenbergRenderer(baseURL string, timeout time.Duration, r *resilience.ServiceResilience) *GotenbergRenderer {
	if r == nil {
		r = resilience.NewDefaultServiceResilience("gotenberg")
	}
	return &GotenbergRenderer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		resilience: r,
	}
}

// RenderPDF конвертирует HTML-документ. Ответы 4xx не повторяются.
func (g *GotenbergRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", operationRender))

	body, contentType, err := htmlForm(html)
	if err != nil {
		return nil, err
	}

	pdf, err := resilience.Do(ctx, g.resilience, operationRender, func() ([]byte, error) {
		return g.convert(ctx, body, contentType)
	})
	if err != nil {
		log.Error(ctx, "pdf rendering failed", zap.Error(err))
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	log.Debug(ctx, "pdf rendered", zap.Int("bytes", len(pdf)))
	return pdf, nil
}

func (g *GotenbergRenderer) convert(ctx context.Context, body []byte, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+convertHTMLPath, bytes.NewReader(body))
	if err != nil {
		return nil, resilience.Permanent(err)
	}
	req.Header.Set("Content-Type", contentType)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		err := fmt.Errorf("gotenberg responded %s: %s", res.Status, strings.TrimSpace(string(msg)))
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return nil, resilience.Permanent(err)
		}
		return nil, err
	}

	return io.ReadAll(io.LimitReader(res.Body, maxPDFSize))
}

// htmlForm собирает multipart-форму, в которой Gotenberg ожидает файл index.html.
func htmlForm(html []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, "", fmt.Errorf("failed to build gotenberg form: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, "", fmt.Errorf("failed to build gotenberg form: %w", err)
	}
	if err := w.WriteField("printBackground", "true"); err != nil {
		return nil, "", fmt.Errorf("failed to build gotenberg form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build gotenberg form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
