package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/export"
	"github.com/p-n-ai/taleem/internal/i18n"
	"github.com/p-n-ai/taleem/internal/lesson"
	"github.com/p-n-ai/taleem/internal/quiz"
)

type catalogResponse struct {
	Language concept.Language    `json:"language"`
	Total    int                 `json:"total"`
	Grades   []lesson.GradeGroup `json:"grades"`
}

func (h *Handler) handleListConcepts(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	concepts := h.concepts.List(r.Context())
	writeCacheable(w, r, catalogResponse{
		Language: lang,
		Total:    len(concepts),
		Grades:   lesson.GroupByGrade(concepts, lang),
	})
}

func (h *Handler) handleGetConcept(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	c, found := h.concepts.Get(r.Context(), r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, i18n.Label(lang, i18n.LabelNotFound))
		return
	}
	writeCacheable(w, r, lesson.BuildPage(c, lang))
}

func (h *Handler) handleConceptMeta(w http.ResponseWriter, r *http.Request) {
	c, found := h.concepts.Get(r.Context(), r.PathValue("id"))
	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	writeJSON(w, status, lesson.Metadata(c, found))
}

type evaluateRequest struct {
	Answer string `json:"answer"`
}

type evaluateResponse struct {
	QuestionID string           `json:"questionId"`
	Language   concept.Language `json:"language"`
	quiz.Feedback
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, found := h.concepts.Get(r.Context(), r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, "concept not found")
		return
	}
	res, ok := i18n.Resolve(c, lang)
	if !ok {
		writeError(w, http.StatusNotFound, "content not available")
		return
	}
	questionID := r.PathValue("questionId")
	q, ok := res.Content.Quiz(questionID)
	if !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	attempt := quiz.NewAttempt(q)
	if err := attempt.SetAnswer(req.Answer); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	feedback, err := attempt.Submit()
	if err != nil {
		if errors.Is(err, quiz.ErrEmptyAnswer) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		QuestionID: questionID,
		Language:   res.Language,
		Feedback:   feedback,
	})
}

type languageBody struct {
	Language concept.Language `json:"language"`
}

func (h *Handler) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languageBody{Language: h.preferences(w, r).Language()})
}

func (h *Handler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang, ok := i18n.Parse(req.Language)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	prefs := h.preferences(w, r)
	if err := prefs.SetLanguage(lang); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, languageBody{Language: prefs.Language()})
}

func (h *Handler) handleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languageBody{Language: h.preferences(w, r).Toggle()})
}

type labelsResponse struct {
	Language concept.Language  `json:"language"`
	Labels   map[string]string `json:"labels"`
}

func (h *Handler) handleLabels(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}
	writeCacheable(w, r, labelsResponse{Language: lang, Labels: i18n.Labels(lang)})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, h.concepts.List(r.Context()), lang); err != nil {
		slog.Error("exporting concepts", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="concepts.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
