package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomoyuki65/users-api/internal/model"
	"github.com/tomoyuki65/users-api/internal/usecase"
)

// SampleHandler は疎通確認用のサンプルAPIハンドラー。
type SampleHandler struct{}

// NewSampleHandler はSampleHandlerを生成する。
func NewSampleHandler() *SampleHandler {
	return &SampleHandler{}
}

type samplePostRequest struct {
	Name string `json:"name"`
}

// Get は固定メッセージを返す。
// GET /api/v1/sample/get
func (h *SampleHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.message(w, r, "Sample Hello !!")
}

// GetPathQuery はパスパラメータとクエリパラメータを返す。
// GET /api/v1/sample/get/{id}?item=...
func (h *SampleHandler) GetPathQuery(w http.ResponseWriter, r *http.Request) {
	text := fmt.Sprintf("id: %s, item: %s", chi.URLParam(r, "id"), r.URL.Query().Get("item"))
	h.message(w, r, text)
}

// Post はリクエストボディのnameを返す。
// POST /api/v1/sample/post
func (h *SampleHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req samplePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeResponse(w, r, usecase.ErrorResponse(r.Context(), err))
		return
	}
	if req.Name == "" {
		writeResponse(w, r, usecase.ErrorResponse(r.Context(), model.NewValidationError("name: 必須項目です。")))
		return
	}
	h.message(w, r, "name: "+req.Name)
}

func (h *SampleHandler) message(w http.ResponseWriter, r *http.Request, text string) {
	writeResponse(w, r, &usecase.Response{
		StatusCode: http.StatusOK,
		Body:       usecase.MessageResponse{Message: text},
	})
}
