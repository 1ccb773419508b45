// Package export renders tenant data as downloadable files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/emsdev/ems-service/internal/domain"
)

// ErrGenerateFailed wraps renderer failures.
var ErrGenerateFailed = errors.New("export generation failed")

const employeeSheet = "Employees"

var employeeHeader = []any{"Name", "Email", "Position", "Department", "Status", "Join Date"}

// EmployeesXLSX writes one row per employee under a bold header row.
// The filename carries the company name and the export date.
func EmployeesXLSX(companyName string, employees []domain.Employee, now time.Time) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeeSheet); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	if err := f.SetSheetRow(employeeSheet, "A1", &employeeHeader); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(employeeHeader))
	_ = f.SetCellStyle(employeeSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(employeeSheet, "A", "B", 28)
	_ = f.SetColWidth(employeeSheet, "C", "D", 20)
	_ = f.SetColWidth(employeeSheet, "E", "F", 14)

	for i, e := range employees {
		row := []any{e.Name, e.Email, e.Position, e.Department, string(e.Status), e.JoinDate.Format("2006-01-02")}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(employeeSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	return buf, fmt.Sprintf("employees_%s_%s.xlsx", slug(companyName), now.Format("20060102")), nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "company"
	}
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
