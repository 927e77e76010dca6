package biblio

import (
	"os"
	"path/filepath"
)

// PDFPath returns the path of the PDF for ck inside bibDir.
func PDFPath(bibDir, ck string) string {
	return filepath.Join(bibDir, ck+".pdf")
}

// BibPath returns the path of the BibTeX file for ck inside bibDir.
func BibPath(bibDir, ck string) string {
	return filepath.Join(bibDir, ck+".bib")
}

// HasPDF reports whether the PDF file for ck exists in bibDir.
func HasPDF(bibDir, ck string) bool {
	info, err := os.Stat(PDFPath(bibDir, ck))
	return err == nil && !info.IsDir()
}

// HasBib reports whether the BibTeX file for ck exists in bibDir.
func HasBib(bibDir, ck string) bool {
	info, err := os.Stat(BibPath(bibDir, ck))
	return err == nil && !info.IsDir()
}
