package marksValidator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"obe/middleware"
	"obe/services/marks"
	"obe/validators"

	"github.com/gofiber/fiber/v2"
)

// MarksTable is an uploaded marks sheet, either a CSV file or JSON headers and rows
type MarksTable struct {
	Headers  []string
	Rows     []map[string]string
	FileName string
	File     *multipart.FileHeader
}

type jsonTable struct {
	Headers  []string                 `json:"headers"`
	Rows     []map[string]interface{} `json:"rows"`
	FileName string                   `json:"file_name"`
}

// AssessmentID validates the :id route parameter
func AssessmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}
		c.Locals("assessmentId", id)
		return c.Next()
	}
}

// Table parses the marks sheet from a multipart "file" field or a JSON body
func Table() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var table *MarksTable
		var errors map[string]string

		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			table, errors = fromFile(c)
		} else {
			table, errors = fromJSON(c)
		}
		if table == nil && errors == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMarksTable", table)
		return c.Next()
	}
}

func fromFile(c *fiber.Ctx) (*MarksTable, map[string]string) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, map[string]string{"file": "Marks file is required!"}
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return nil, map[string]string{"file": "Only CSV files are supported!"}
	}

	src, err := file.Open()
	if err != nil {
		return nil, map[string]string{"file": "Unable to read the uploaded file!"}
	}
	defer src.Close()

	headers, rows, err := marks.ParseCSV(src)
	if err != nil {
		return nil, map[string]string{"file": fmt.Sprintf("Malformed CSV: %v", err)}
	}

	return &MarksTable{Headers: headers, Rows: rows, FileName: file.Filename, File: file}, nil
}

func fromJSON(c *fiber.Ctx) (*MarksTable, map[string]string) {
	reqData := new(jsonTable)
	if err := c.BodyParser(reqData); err != nil {
		return nil, nil
	}
	// an empty header list is reported by the marks validator itself

	rows := make([]map[string]string, len(reqData.Rows))
	for i, raw := range reqData.Rows {
		row := make(map[string]string, len(raw))
		for k, v := range raw {
			row[k] = cell(v)
		}
		rows[i] = row
	}
	return &MarksTable{Headers: reqData.Headers, Rows: rows, FileName: reqData.FileName}, nil
}

// cell renders a JSON value the way it would appear in a CSV cell
func cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
