package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"it-helpdesk/internal/store"
	"it-helpdesk/pkg/importer"
)

type fakeRecorder struct {
	imported []int
	tickets  int
}

func (f *fakeRecorder) AssetsImported(n int) { f.imported = append(f.imported, n) }
func (f *fakeRecorder) TicketCreated()       { f.tickets++ }

func newTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger, hook
}

func newTestViews(t *testing.T) *Views {
	t.Helper()
	logger, _ := newTestLogger()
	views, err := NewViews(logger)
	require.NoError(t, err)
	return views
}

// multipartUpload builds a POST /upload request carrying one file part.
func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		fileWriter, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fileWriter.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func ticketForm(values url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/ticket", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	b, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(b)
}

func workbook(t *testing.T, table [][]string) []byte {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, cells := range table {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func newImports(t *testing.T, s *store.Store, schema importer.Schema) (*ImportsHandler, *fakeRecorder, *test.Hook) {
	t.Helper()
	logger, hook := newTestLogger()
	h := NewImportsHandler(s, schema, newTestViews(t), logger)
	rec := &fakeRecorder{}
	h.Metrics = rec
	return h, rec, hook
}
