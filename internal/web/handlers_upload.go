package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
)

// multipartMemory is how much of a form is held in memory before spilling
// to temporary files.
const multipartMemory = 32 << 20

// parseUploadForm caps the body at files uploads plus form overhead and
// parses it.
func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request, files int) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize*int64(files)+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.ErrFileTooLarge
		}
		return fmt.Errorf("invalid form: %w", core.ErrNoFile)
	}
	return nil
}

// handleUpload stores a CSV file and returns its summary.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 1); err != nil {
		s.fail(w, r, err)
		return
	}

	file, name, err := formFile(r, "file")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer file.Close()

	ds, err := s.service.Upload(r.Context(), name, file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/history/"+strconv.FormatInt(ds.FileID, 10))
	writeJSON(w, http.StatusCreated, ds)
}

// compareResponse is a comparison plus its display-ready rows.
type compareResponse struct {
	equipment.ComparisonResult
	View view.ComparisonView `json:"view"`
}

// handleCompareFiles compares two uploaded files without storing them.
func (s *Server) handleCompareFiles(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 2); err != nil {
		s.fail(w, r, err)
		return
	}

	fileA, _, err := formFile(r, "file_a")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer fileA.Close()

	fileB, _, err := formFile(r, "file_b")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer fileB.Close()

	res, err := s.service.CompareFiles(r.Context(), fileA, fileB)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{res, view.FormatComparison(res)})
}

// handleCompareStored compares two history items, ?a=&b=.
func (s *Server) handleCompareStored(w http.ResponseWriter, r *http.Request) {
	res, err := s.compareStored(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{res, view.FormatComparison(res)})
}

func (s *Server) compareStored(r *http.Request) (equipment.ComparisonResult, error) {
	idA, err := parseID(r.URL.Query().Get("a"))
	if err != nil {
		return equipment.ComparisonResult{}, err
	}
	idB, err := parseID(r.URL.Query().Get("b"))
	if err != nil {
		return equipment.ComparisonResult{}, err
	}
	return s.service.CompareStored(r.Context(), idA, idB)
}
