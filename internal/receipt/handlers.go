package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zombor/receipt-reader/internal/scanning"
)

const (
	// maxUploadSize fits high-resolution phone photos
	maxUploadSize = 50 << 20
	maxTextSize   = 1 << 20
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// jsonError writes an error response with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	writeJSON(w, code, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var engineErr *scanning.EngineError
	switch {
	case errors.Is(err, scanning.ErrLowQuality):
		jsonError(w, scanning.ErrLowQuality.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &engineErr):
		jsonError(w, "The OCR engine could not read this receipt. Please try again.", http.StatusBadGateway)
	case errors.Is(err, scanning.ErrUnsupportedFormat):
		jsonError(w, scanning.ErrUnsupportedFormat.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidReceipt):
		jsonError(w, invalidMessage(err), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		jsonError(w, "Receipt not found", http.StatusNotFound)
	default:
		jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// invalidMessage drops the wrapping prefixes so users see only the validation problem
func invalidMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ErrInvalidReceipt.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}

// contentTypeFor picks the upload's MIME type, guessing from the extension when absent
func contentTypeFor(declared, filename string) string {
	contentType := strings.ToLower(strings.TrimSpace(declared))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleScanReceipt reads an uploaded photo and returns the unsaved receipt
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No file was selected. Please choose a file to upload.", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := contentTypeFor(header.Header.Get("Content-Type"), header.Filename)
	receipt, err := s.service.ScanReceipt(r.Context(), header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", header.Filename, "error", err)
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, receipt)
}

// handleParseText interprets a transcript posted as the request body
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTextSize))
	if err != nil {
		jsonError(w, "Text is too large", http.StatusRequestEntityTooLarge)
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			jsonError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, "Receipt text is required", http.StatusBadRequest)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, s.service.ParseText(text))
}

// handleSaveReceipt persists a receipt confirmed by the user
func (s *Server) handleSaveReceipt(w http.ResponseWriter, r *http.Request) {
	var receipt Receipt
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextSize)).Decode(&receipt); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := s.service.SaveReceipt(&receipt)
	if err != nil {
		slog.Error("Error saving receipt", "id", receipt.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusCreated, saved)
}

// handleListReceipts returns a list of all receipts
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.service.ListReceipts()
	if err != nil {
		slog.Error("Error listing receipts", "error", err)
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, receipts)
}

// handleGetReceipt returns a single receipt
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.service.GetReceipt(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, receipt)
}

// handleGetReceiptFile returns the stored image for a receipt
func (s *Server) handleGetReceiptFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetReceiptFile(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteReceipt deletes a receipt
func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteReceipt(r.PathValue("id")); err != nil {
		slog.Error("Error deleting receipt", "id", r.PathValue("id"), "error", err)
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleExport downloads every saved receipt as a spreadsheet
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportXLSX()
	if err != nil {
		slog.Error("Error exporting receipts", "error", err)
		writeServiceError(w, err)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.xlsx"`)
	w.Write(data)
}
