package api

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ojt/internal/attachments"
	"ojt/internal/attendance"
	"ojt/internal/auth"
	"ojt/internal/export"
	"ojt/internal/report"
	"ojt/internal/validate"
	"ojt/internal/workflow"
)

const viewKey = "view"

const (
	csvType  = "text/csv; charset=utf-8"
	xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// requireView resolves :view and checks the caller may open it.
func (h *Handler) requireView(c *gin.Context) {
	v, ok := h.views[c.Param("view")]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown view"})
		return
	}
	claims, _ := auth.FromContext(c)
	for _, role := range v.roles {
		if claims.Role == role {
			c.Set(viewKey, v)
			c.Next()
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

func currentView(c *gin.Context) *view {
	return c.MustGet(viewKey).(*view)
}

// ListAttendance returns the view's attendance board.
func (h *Handler) ListAttendance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"records": currentView(c).attendance.Records()})
}

// TransitionAttendance applies :action to one attendance record.
func (h *Handler) TransitionAttendance(c *gin.Context) {
	rec, err := currentView(c).attendance.Apply(c.Param("id"), workflow.Action(c.Param("action")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// ReloadAttendance restores the view's attendance seed.
func (h *Handler) ReloadAttendance(c *gin.Context) {
	b := currentView(c).attendance
	b.Reload()
	c.JSON(http.StatusOK, gin.H{"records": b.Records()})
}

func (h *Handler) ExportAttendanceCSV(c *gin.Context) {
	v := currentView(c)
	sendExport(c, "attendance-"+v.name+".csv", csvType, func(w io.Writer) error {
		return export.WriteCSV(w, attendance.Table(v.attendance.Records()))
	})
}

func (h *Handler) ExportAttendanceXLSX(c *gin.Context) {
	v := currentView(c)
	sendExport(c, "attendance-"+v.name+".xlsx", xlsxType, func(w io.Writer) error {
		return export.WriteXLSX(w, "Attendance", attendance.Table(v.attendance.Records()))
	})
}

// ListReports returns the view's reports, optionally filtered by ?status=.
func (h *Handler) ListReports(c *gin.Context) {
	status := report.Status(c.Query("status"))
	if status != "" && !report.Machine.Valid(status) {
		writeError(c, validate.ValidationError{Field: "status", Message: "Unknown status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": report.Filter(currentView(c).reports.Records(), status)})
}

// GetReport returns one report.
func (h *Handler) GetReport(c *gin.Context) {
	rec, ok := currentView(c).reports.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// TransitionReport applies :action to one report.
func (h *Handler) TransitionReport(c *gin.Context) {
	rec, err := currentView(c).reports.Apply(c.Param("id"), workflow.Action(c.Param("action")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// ReloadReports restores the view's report seed.
func (h *Handler) ReloadReports(c *gin.Context) {
	b := currentView(c).reports
	b.Reload()
	c.JSON(http.StatusOK, gin.H{"records": b.Records()})
}

func (h *Handler) ExportReportsCSV(c *gin.Context) {
	v := currentView(c)
	sendExport(c, "reports-"+v.name+".csv", csvType, func(w io.Writer) error {
		return export.WriteCSV(w, report.Table(v.reports.Records()))
	})
}

func (h *Handler) ExportReportsXLSX(c *gin.Context) {
	v := currentView(c)
	sendExport(c, "reports-"+v.name+".xlsx", xlsxType, func(w io.Writer) error {
		return export.WriteXLSX(w, "Reports", report.Table(v.reports.Records()))
	})
}

// UploadAttachment stores a multipart file or {"data": "<data URL>"} body and
// links it to the report.
func (h *Handler) UploadAttachment(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "attachment storage not configured"})
		return
	}
	b := currentView(c).reports
	id := c.Param("id")
	if _, ok := b.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var res *attachments.Result
	var err error
	ctx := c.Request.Context()
	if strings.Contains(c.ContentType(), "multipart/form-data") {
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(file)
		if ferr != nil {
			writeError(c, fmt.Errorf("read upload: %w", ferr))
			return
		}
		res, err = h.Uploader.UploadBytes(ctx, data, header.Filename)
	} else {
		var body struct {
			Data string `json:"data" binding:"required"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": `provide {"data": "<base64 data URL>"}`})
			return
		}
		res, err = h.Uploader.UploadDataURL(ctx, body.Data)
	}
	if err != nil {
		log.Printf("attachment upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "attachment upload failed"})
		return
	}

	rec, err := b.Update(id, func(r report.Record) report.Record {
		r.Attachment = res.SecureURL
		return r
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec, "public_id": res.PublicID})
}

func sendExport(c *gin.Context, filename, contentType string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
