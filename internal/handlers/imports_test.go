package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-helpdesk/internal/models"
	"it-helpdesk/internal/store"
	"it-helpdesk/pkg/importer"
)

const minimalCSV = "Asset Code,Device Type,Brand,Model,Location,Email Id\n" +
	"A1,Laptop,Dell,E7450,HQ,a@b.com\n" +
	"A2,Desktop,HP,800 G1,Branch,c@d.com\n" +
	"A3,Printer,Canon,LBP,HQ,e@f.com\n"

func TestImportsHandler_UploadForm(t *testing.T) {
	h, _, _ := newImports(t, store.New(), importer.Minimal())

	w := httptest.NewRecorder()
	h.UploadForm(w, httptest.NewRequest("GET", "/upload", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.Contains(t, body, `name="file"`)
}

func TestImportsHandler_Upload(t *testing.T) {
	t.Run("Rejects non-multipart content type", func(t *testing.T) {
		s := store.New()
		h, _, _ := newImports(t, s, importer.Minimal())

		req := httptest.NewRequest("POST", "/upload", strings.NewReader("Asset Code\nA1\n"))
		req.Header.Set("Content-Type", "text/csv")

		w := httptest.NewRecorder()
		h.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "content-type must be multipart/form-data")
	})

	t.Run("Rejects missing file", func(t *testing.T) {
		s := store.New()
		s.ReplaceAssets([]models.Asset{{"asset_code": "KEEP"}})
		h, rec, _ := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "", "", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
		assert.Len(t, s.Assets(), 1, "existing assets are untouched")
		assert.Empty(t, rec.imported)
	})

	t.Run("Rejects file under another field name", func(t *testing.T) {
		h, _, _ := newImports(t, store.New(), importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "upload", "assets.csv", []byte(minimalCSV)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("Rejects oversized body", func(t *testing.T) {
		h, _, _ := newImports(t, store.New(), importer.Minimal())
		h.MaxBytes = 64

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "assets.csv", bytes.Repeat([]byte("A1,Dell\n"), 100)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Imports every row in file order", func(t *testing.T) {
		s := store.New()
		h, rec, hook := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "assets.csv", []byte(minimalCSV)))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "3 assets uploaded.")
		assert.Contains(t, body, `href="/assets"`)

		assets := s.Assets()
		require.Len(t, assets, 3)
		assert.Equal(t, "A1", assets[0].Get("asset_code"))
		assert.Equal(t, "A2", assets[1].Get("asset_code"))
		assert.Equal(t, "A3", assets[2].Get("asset_code"))
		assert.Equal(t, "Canon", assets[2].Get("brand"))

		assert.Equal(t, []int{3}, rec.imported)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "Assets imported", hook.LastEntry().Message)
		assert.Equal(t, 3, hook.LastEntry().Data["rows"])
	})

	t.Run("Second upload replaces the first", func(t *testing.T) {
		s := store.New()
		h, _, _ := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "first.csv", []byte(minimalCSV)))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "second.csv", []byte("asset_code,brand\nB1,Lenovo\nB2,Apple\n")))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2 assets uploaded.")

		assets := s.Assets()
		require.Len(t, assets, 2)
		assert.Equal(t, "B1", assets[0].Get("asset_code"))
		assert.Equal(t, "Apple", assets[1].Get("brand"))
	})

	t.Run("Empty file imports zero assets", func(t *testing.T) {
		s := store.New()
		s.ReplaceAssets([]models.Asset{{"asset_code": "OLD"}})
		h, _, _ := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "empty.csv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "0 assets uploaded.")
		assert.Empty(t, s.Assets())
	})

	t.Run("Missing column yields empty field", func(t *testing.T) {
		s := store.New()
		h, _, hook := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "partial.csv", []byte("Asset Code,Brand\nA1,Dell\nA2\n")))

		require.Equal(t, http.StatusOK, w.Code)
		assets := s.Assets()
		require.Len(t, assets, 2)
		assert.Equal(t, "", assets[0].Get("location"))
		assert.Equal(t, "", assets[1].Get("brand"), "short rows are kept")
		assert.Contains(t, hook.LastEntry().Data["missing"], "Location")
	})

	t.Run("Extended schema", func(t *testing.T) {
		s := store.New()
		h, _, _ := newImports(t, s, importer.Extended())
		csvData := "Sl. No,Asset Code,Name of the Person,Windows version\n1,A9,Asha,Windows 11\n"

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "ext.csv", []byte(csvData)))

		require.Equal(t, http.StatusOK, w.Code)
		assets := s.Assets()
		require.Len(t, assets, 1)
		assert.Equal(t, "1", assets[0].Get("sl_no"))
		assert.Equal(t, "Asha", assets[0].Get("person_name"))
		assert.Equal(t, "Windows 11", assets[0].Get("windows_version"))
	})

	t.Run("Imports xlsx workbook", func(t *testing.T) {
		s := store.New()
		h, _, _ := newImports(t, s, importer.Minimal())
		data := workbook(t, [][]string{
			{"Asset Code", "Brand"},
			{"X1", "Dell"},
			{"X2", "HP"},
		})

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "assets.XLSX", data))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2 assets uploaded.")
		assert.Equal(t, "X2", s.Assets()[1].Get("asset_code"))
	})

	t.Run("Rejects corrupt xlsx and keeps assets", func(t *testing.T) {
		s := store.New()
		s.ReplaceAssets([]models.Asset{{"asset_code": "KEEP"}})
		h, _, hook := newImports(t, s, importer.Minimal())

		w := httptest.NewRecorder()
		h.Upload(w, multipartUpload(t, "file", "broken.xlsx", []byte("fake excel content")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "could not read upload")
		assert.Equal(t, "KEEP", s.Assets()[0].Get("asset_code"))
		assert.Equal(t, "Asset upload rejected", hook.LastEntry().Message)
	})
}
