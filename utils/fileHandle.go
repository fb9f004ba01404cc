package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// archiveName builds a unique file name for an assessment's marks sheet
func archiveName(assessmentID uint, ext string) string {
	return fmt.Sprintf("assessment_%d_%s%s", assessmentID, time.Now().Format("20060102150405.000000000"), ext)
}

// SaveUploadedFile copies an uploaded marks file into destDir and returns its path
func SaveUploadedFile(file *multipart.FileHeader, destDir string, assessmentID uint) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, archiveName(assessmentID, filepath.Ext(file.Filename)))
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// SaveTable writes a marks table submitted as JSON into destDir as CSV and returns its path
func SaveTable(headers []string, rows []map[string]string, destDir string, assessmentID uint) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, archiveName(assessmentID, ".csv"))
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	w := csv.NewWriter(dst)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return filePath, nil
}
