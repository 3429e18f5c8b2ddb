package ui

import (
	"log"
	"net/http"
	"os"
	"time"

	"datasheet/domain/sheet"
)

// handleExport renders the currently selected rows into the data sheet PDF
// and hands it back as a download. A missing logo degrades the export; a
// structural render failure aborts it with no partial file offered.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)

	records := a.store.Selected(id)
	if len(records) == 0 {
		log.Printf("[handleExport] No rows selected, nothing to export")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	table := sheet.Table{Records: records, SourceColumns: 3}
	output, err := a.renderer.Render(table, a.loadLogo(), time.Now())
	if err != nil {
		log.Printf("[handleExport] FAILED - Render error: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="classification.pdf"`)
	w.Header().Set("Content-Type", "application/pdf")
	if _, err := w.Write(output); err != nil {
		log.Printf("[handleExport] FAILED - Error writing response: %v", err)
	}
}

// loadLogo reads the configured logo file. Absence is a warning, never an
// error: the export proceeds without the logo.
func (a *App) loadLogo() []byte {
	logo, err := os.ReadFile(a.config.Paths.LogoFile)
	if err != nil {
		log.Printf("[handleExport] WARNING - Could not load logo %s: %v", a.config.Paths.LogoFile, err)
		return nil
	}
	return logo
}
