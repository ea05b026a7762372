package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ojt/internal/auth"
	"ojt/internal/trainee"
)

type traineeView struct {
	trainee.Trainee
	HoursRemaining float64 `json:"hours_remaining"`
}

func newTraineeView(t trainee.Trainee) traineeView {
	return traineeView{Trainee: t, HoursRemaining: t.HoursRemaining()}
}

// openEditor returns the caller's editor for the :id param, opening one if
// needed.
func (h *Handler) openEditor(c *gin.Context) (*trainee.Editor, bool) {
	claims, _ := auth.FromContext(c)
	ed, err := h.Sessions.Editor(c.Request.Context(), claims.Username, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return ed, true
}

// editor returns the caller's existing editor for the :id param.
func (h *Handler) editor(c *gin.Context) (*trainee.Editor, bool) {
	claims, _ := auth.FromContext(c)
	ed, ok := h.Sessions.Lookup(claims.Username, c.Param("id"))
	if !ok {
		writeError(c, trainee.ErrNotEditing)
		return nil, false
	}
	return ed, true
}

// ListTrainees returns the catalogue with stored edits applied.
func (h *Handler) ListTrainees(c *gin.Context) {
	list, err := h.Trainees.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]traineeView, 0, len(list))
	for _, t := range list {
		out = append(out, newTraineeView(t))
	}
	c.JSON(http.StatusOK, gin.H{"trainees": out})
}

// GetTrainee resolves one trainee and reports the caller's edit state.
func (h *Handler) GetTrainee(c *gin.Context) {
	t, err := h.Trainees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := gin.H{"trainee": newTraineeView(t), "editing": false, "saved": false}
	claims, _ := auth.FromContext(c)
	if ed, ok := h.Sessions.Lookup(claims.Username, t.ID); ok {
		resp["saved"] = ed.ShowSaved()
		if d, ok := ed.Draft(); ok {
			resp["editing"] = true
			resp["draft"] = newTraineeView(d)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// EditTrainee starts editing from the latest committed record.
func (h *Handler) EditTrainee(c *gin.Context) {
	ed, ok := h.openEditor(c)
	if !ok {
		return
	}
	d, err := ed.Begin(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": newTraineeView(d)})
}

// PatchDraft merges the JSON body into the draft.
func (h *Handler) PatchDraft(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	if !json.Valid(body) {
		badRequest(c, errors.New("body must be a JSON object"))
		return
	}
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	d, err := ed.Merge(body)
	if err != nil {
		if errors.Is(err, trainee.ErrNotEditing) {
			writeError(c, err)
			return
		}
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": newTraineeView(d)})
}

// SaveTrainee commits the draft.
func (h *Handler) SaveTrainee(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	t, err := ed.Save(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trainee": newTraineeView(t), "saved": ed.ShowSaved()})
}

// CancelTrainee drops the draft and returns the committed record.
func (h *Handler) CancelTrainee(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	id := c.Param("id")
	ed, ok := h.Sessions.Lookup(claims.Username, id)
	if !ok {
		t, err := h.Trainees.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trainee": newTraineeView(t)})
		return
	}
	t := ed.Cancel()
	h.Sessions.Drop(claims.Username, id)
	c.JSON(http.StatusOK, gin.H{"trainee": newTraineeView(t)})
}

// DeleteTrainee removes the stored edits so the seed entry shows again.
func (h *Handler) DeleteTrainee(c *gin.Context) {
	ed, ok := h.openEditor(c)
	if !ok {
		return
	}
	if err := ed.Delete(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	claims, _ := auth.FromContext(c)
	h.Sessions.Drop(claims.Username, c.Param("id"))
	c.Status(http.StatusNoContent)
}
