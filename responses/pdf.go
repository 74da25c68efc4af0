package responses

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
)

// WritePDFBytesWithFilename writes a complete document. extra headers are set
// before the header is frozen
func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, PDFBytes []byte, extra http.Header) {
	for k, vs := range extra {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(PDFBytes)))
	WritePDFResponseHeaders(w, filename)
	if _, err := w.Write(PDFBytes); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

// WritePDFResponseHeaders write HTTP response headers for PDF response. i.e. headers are frozen
func WritePDFResponseHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
