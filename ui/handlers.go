package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"datasheet/adapters/tabular"
	"datasheet/domain/sheet"
	"datasheet/internal/errors"
)

const sessionCookie = "datasheet_session"

// pageData is what the index page and the viewer fragment render from.
type pageData struct {
	Filename      string
	HasTable      bool
	HasHeader     bool
	Search        string
	SelectAll     bool
	Rows          []rowData
	SelectedCount int
	TotalRows     int
	Error         string
}

type rowData struct {
	Index   int
	Name    string
	UOM     string
	Value   string
	Checked bool
}

// sessionID returns the request's session ID, creating a session and
// setting the cookie when none exists yet.
func (a *App) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && a.store.Exists(cookie.Value) {
		return cookie.Value
	}
	id := a.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (a *App) buildPageData(id, errMsg string) pageData {
	view, ok := a.store.View(id)
	if !ok {
		return pageData{Error: errMsg}
	}

	data := pageData{
		Filename:  view.Filename,
		HasTable:  view.Filename != "",
		HasHeader: view.HasHeader,
		Search:    view.Search,
		SelectAll: view.SelectAll,
		TotalRows: view.TotalRows,
		Error:     errMsg,
	}
	for _, row := range view.Rows {
		if row.Checked {
			data.SelectedCount++
		}
		data.Rows = append(data.Rows, rowData{
			Index:   row.Index,
			Name:    row.Record.Name,
			UOM:     row.Record.UOM,
			Value:   row.Record.Value,
			Checked: row.Checked,
		})
	}
	return data
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	a.renderTemplate(w, "index.html", a.buildPageData(id, ""))
}

// handleUpload receives the CSV/XLSX file, normalizes it and replaces the
// session's table. Normalization failures are terminal for the upload: the
// previous table stays untouched and the error is shown as a banner.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	log.Printf("[handleUpload] Starting file upload process")

	maxBytes := int64(a.config.Upload.MaxSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		a.renderUploadError(w, id, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		log.Printf("[handleUpload] FAILED - File too large: %d bytes", header.Size)
		a.renderUploadError(w, id, fmt.Sprintf("File size exceeds the %dMB limit", a.config.Upload.MaxSizeMB))
		return
	}

	filename := header.Filename
	validExtensions := []string{".csv", ".xlsx", ".xls"}
	hasValidExtension := false
	for _, ext := range validExtensions {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			hasValidExtension = true
			break
		}
	}
	if !hasValidExtension {
		log.Printf("[handleUpload] FAILED - Invalid file extension: %s", filename)
		a.renderUploadError(w, id, "Only CSV (.csv) and Excel (.xlsx, .xls) files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Error reading upload: %v", err)
		a.renderUploadError(w, id, "Failed to read uploaded file")
		return
	}

	hasHeader := r.FormValue("has_header") != ""

	rows, err := tabular.NewReader(filename).ReadRows(data)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Parse error for %s: %v", filename, err)
		a.renderUploadError(w, id, "Failed to read file: "+err.Error())
		return
	}

	table, err := sheet.Normalize(rows, hasHeader)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Normalization error for %s: %v", filename, err)
		if errors.GetCode(err) == errors.CodeSchemaError {
			a.renderUploadError(w, id, "CSV must have at least three columns: Name, UOM, and Value.")
			return
		}
		a.renderUploadError(w, id, "Failed to process file: "+err.Error())
		return
	}

	a.store.SetTable(id, table, filename, hasHeader)
	log.Printf("[handleUpload] Upload complete: %s (%d rows, %d source columns)", filename, table.Len(), table.SourceColumns)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) renderUploadError(w http.ResponseWriter, id, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusBadRequest)
	if err := a.templates.ExecuteTemplate(w, "index.html", a.buildPageData(id, message)); err != nil {
		log.Printf("Template error: %v", err)
	}
}

func (a *App) handleSearch(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	a.store.SetSearch(id, r.FormValue("search"))
	a.respondViewer(w, r, id)
}

func (a *App) handleToggleRow(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "Invalid row index", http.StatusBadRequest)
		return
	}
	a.store.ToggleRow(id, index)
	a.respondViewer(w, r, id)
}

func (a *App) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	on := r.FormValue("select_all") == "on" || r.FormValue("select_all") == "true"
	a.store.SetAll(id, on)
	a.respondViewer(w, r, id)
}

// respondViewer re-renders the viewer region: a fragment for HTMX
// requests, a full-page redirect otherwise.
func (a *App) respondViewer(w http.ResponseWriter, r *http.Request, id string) {
	if isHTMX(r) {
		a.renderTemplate(w, "viewer.html", a.buildPageData(id, ""))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
