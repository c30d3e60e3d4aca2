package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server/orders"
	"github.com/dmitrijs2005/printdraft/internal/server/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	st := memory.New("http://localhost:8080")
	svc := orders.NewService(st, log)

	r := gin.New()
	SetupRoutes(r, New(svc, st, log))
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerFile(t *testing.T, r *gin.Engine, orderID, filetype string) (id, uploadURL string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/orders/"+orderID+"/files", gin.H{
		"filename": "pic.png",
		"filetype": filetype,
		"filesize": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID        string `json:"id"`
		UploadURL string `json:"uploadUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.NotEmpty(t, resp.UploadURL)
	return resp.ID, resp.UploadURL
}

func TestRegisterFile_ReturnsIDAndUploadURL(t *testing.T) {
	r, _ := newTestRouter(t)

	id, uploadURL := registerFile(t, r, "ord-1", "image/png")
	assert.Contains(t, uploadURL, "/uploads/ord-1/"+id)
}

func TestRegisterFile_RejectsIncompleteBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/orders/ord-1/files", gin.H{"filename": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid_request", envelope.Error.Code)
}

func TestUploadAndDownload_RoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	id, _ := registerFile(t, r, "ord-1", "application/pdf")

	req := httptest.NewRequest(http.MethodPut, "/uploads/ord-1/"+id, strings.NewReader("%PDF-1.4 content"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/uploads/ord-1/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 content", w.Body.String())
}

func TestDownload_MissingObject(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/uploads/nothing/here", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFile_RemovesRegistration(t *testing.T) {
	r, _ := newTestRouter(t)

	id, _ := registerFile(t, r, "ord-1", "image/png")

	w := doJSON(t, r, http.MethodDelete, "/orders/ord-1/files/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/orders/ord-1/files/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestThumbnail_UnknownFileIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/orders/ord-1/files/nope/thumbnail", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestThumbnail_ImageGoesProcessingThenReady(t *testing.T) {
	r, st := newTestRouter(t)

	id, _ := registerFile(t, r, "ord-1", "image/png")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, st.Put(t.Context(), "ord-1/"+id, buf.Bytes()))

	path := "/orders/ord-1/files/" + id + "/thumbnail"

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	deadline := time.Now().Add(2 * time.Second)
	for {
		w = doJSON(t, r, http.MethodGet, path, nil)
		if w.Code == http.StatusOK {
			break
		}
		require.Equal(t, http.StatusAccepted, w.Code)
		require.True(t, time.Now().Before(deadline), "thumbnail never became ready")
		time.Sleep(5 * time.Millisecond)
	}

	var resp struct {
		Data *string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Contains(t, *resp.Data, ".thumb.png")
}

func TestThumbnail_NonImageReturnsNullData(t *testing.T) {
	r, st := newTestRouter(t)

	id, _ := registerFile(t, r, "ord-1", "application/pdf")
	require.NoError(t, st.Put(t.Context(), "ord-1/"+id, []byte("%PDF-1.4")))

	path := "/orders/ord-1/files/" + id + "/thumbnail"

	deadline := time.Now().Add(2 * time.Second)
	var w *httptest.ResponseRecorder
	for {
		w = doJSON(t, r, http.MethodGet, path, nil)
		if w.Code == http.StatusOK {
			break
		}
		require.Equal(t, http.StatusAccepted, w.Code)
		require.True(t, time.Now().Before(deadline), "thumbnail never settled")
		time.Sleep(5 * time.Millisecond)
	}

	assert.JSONEq(t, `{"data": null}`, w.Body.String())
}

func TestPapers_ServesCatalog(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/opts/papers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var papers []struct {
		ID       string `json:"id"`
		Variants []struct {
			ID          string `json:"id"`
			IsAvailable bool   `json:"isAvailable"`
		} `json:"variants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &papers))
	require.NotEmpty(t, papers)
	require.NotEmpty(t, papers[0].Variants)
}
