package handlers

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
)

const (
	stepUpload = "upload"
	stepReview = "review"
	stepDone   = "done"
)

// uploads larger than this spool to a temp file
const uploadMemory = 8 << 20

var (
	errUploadMissing = errors.New("no file uploaded")
	errUploadType    = errors.New("not an image")
	errUploadSize    = errors.New("file too large")
)

// EnrollAPI is what the menu upload flow needs from the backend.
type EnrollAPI interface {
	menuguide.MenuRecognizer
	menuguide.MenuIdentifier
}

// InitEnrollTemplates parses the restaurant menu upload pages.
func InitEnrollTemplates() *template.Template {
	return render.MustParsePage("b2b.html")
}

// EnrollHandler handles GET /b2b: the upload form.
func EnrollHandler(i18n *i18n.I18n, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := render.BaseTemplateData(r, i18n, map[string]any{"Step": stepUpload})
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

// UploadHandler handles POST /b2b/upload. The photo is read by OCR and each
// recognised line is matched against the knowledge base for review.
func UploadHandler(cfg *menuguide.Config, i18n *i18n.I18n, api EnrollAPI, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := render.BaseTemplateData(r, i18n, map[string]any{"Step": stepUpload})
		fail := func(status int, key string) {
			data.Extra["Step"] = stepUpload
			data.Extra["Error"] = data.T(key)
			render.RenderStatus(w, status, tmpl, "base", data)
		}

		// Step 1: Validate the upload
		file, header, err := uploadedImage(r, cfg.Upload.MaxBytes)
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
		switch {
		case errors.Is(err, errUploadSize):
			fail(http.StatusRequestEntityTooLarge, "b2b.errorSize")
			return
		case errors.Is(err, errUploadType):
			fail(http.StatusUnsupportedMediaType, "b2b.errorType")
			return
		case err != nil:
			slog.Info("[B2B] Upload rejected", "err", err)
			fail(http.StatusBadRequest, "b2b.errorMissing")
			return
		}
		defer file.Close()

		// Step 2: OCR
		ocr, err := api.Recognize(r.Context(), header.Filename, file)
		if err != nil {
			slog.Error("[B2B] OCR failed", "file", header.Filename, "err", err)
			fail(http.StatusBadGateway, "error.backend")
			return
		}

		// Step 3: Match every recognised line
		items := make([]render.ReviewItem, len(ocr.MenuItems))
		var g errgroup.Group
		g.SetLimit(cfg.Backend.SearchConcurrency)
		for i, line := range ocr.MenuItems {
			items[i].OCR = line
			if strings.TrimSpace(line.NameKo) == "" {
				continue
			}
			g.Go(func() error {
				items[i].Match, items[i].Err = api.Identify(r.Context(), line.NameKo)
				if items[i].Err != nil {
					slog.Warn("[B2B] Identify failed", "name", line.NameKo, "err", items[i].Err)
				}
				return nil
			})
		}
		_ = g.Wait()

		// Step 4: Review step
		cards := make([]render.ReviewCard, 0, len(items))
		for i, it := range items {
			cards = append(cards, render.BuildReviewCard(i, it, data.R))
		}
		data.Extra["Step"] = stepReview
		data.Extra["RawText"] = ocr.RawText
		data.Extra["OCRConfidence"] = render.Percent(ocr.OCRConfidence)
		data.Extra["OCRClass"] = render.ReviewConfidence(ocr.OCRConfidence)
		data.Extra["Cards"] = cards
		data.Extra["Summary"] = render.SummarizeReview(items)

		slog.Info("[B2B] Menu recognised", "items", len(items), "ocr_confidence", ocr.OCRConfidence)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

// uploadedImage returns the "file" part when it is an image within limit.
// The content type is sniffed, not taken from the client.
func uploadedImage(r *http.Request, limit int64) (multipart.File, *multipart.FileHeader, error) {
	err := r.ParseMultipartForm(uploadMemory)
	var file multipart.File
	var header *multipart.FileHeader
	if err == nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, errUploadSize
		}
		return nil, nil, errors.Join(errUploadMissing, err)
	}
	if header.Size > limit {
		file.Close()
		return nil, nil, errUploadSize
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, nil, err
	}
	if !strings.HasPrefix(http.DetectContentType(sniff[:n]), "image/") {
		file.Close()
		return nil, nil, errUploadType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, err
	}
	return file, header, nil
}
