package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"it-helpdesk/internal/models"
	"it-helpdesk/pkg/importer"
)

// ImportsHandler handles asset spreadsheet uploads
type ImportsHandler struct {
	Store    AssetStore
	Schema   importer.Schema
	MaxBytes int64
	Views    *Views
	Log      logrus.FieldLogger
	Metrics  Recorder
}

// UploadResultPage is rendered after a successful upload.
type UploadResultPage struct {
	Count int
}

// NewImportsHandler creates a new imports handler
func NewImportsHandler(store AssetStore, schema importer.Schema, views *Views, log logrus.FieldLogger) *ImportsHandler {
	return &ImportsHandler{
		Store:    store,
		Schema:   schema,
		MaxBytes: 20 << 20, // 20 MB
		Views:    views,
		Log:      log,
	}
}

// UploadForm serves the upload form.
func (h *ImportsHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "upload", nil)
}

// Upload replaces the asset collection with the rows of the uploaded file.
func (h *ImportsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit body size
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	// Require multipart
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		http.Error(w, "content-type must be multipart/form-data", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := importer.Import(r.Context(), file, importer.ImportOptions{
		Schema: h.Schema,
		Format: importer.FormatFromFilename(header.Filename),
	})
	if err != nil {
		h.Log.WithError(err).WithField("filename", header.Filename).Warn("Asset upload rejected")
		http.Error(w, "could not read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	assets := make([]models.Asset, len(res.Records))
	for i, rec := range res.Records {
		assets[i] = models.Asset(rec)
	}
	count := h.Store.ReplaceAssets(assets)
	recorderOrNop(h.Metrics).AssetsImported(count)

	h.Log.WithFields(logrus.Fields{
		"filename":          header.Filename,
		"schema":            res.Summary.Schema,
		"rows":              res.Summary.Rows,
		"matched":           res.Summary.Matched,
		"missing":           res.Summary.Missing,
		"ignored":           res.Summary.Ignored,
		"duplicate_headers": res.Summary.DuplicateHeaders,
	}).Info("Assets imported")

	h.Views.Render(w, http.StatusOK, "upload_result", UploadResultPage{Count: count})
}
