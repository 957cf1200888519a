package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ApplyDefaultExcelFormatting — единое оформление листа отчёта:
// жирная шапка, автофильтр по первой строке и эвристическая ширина колонок.
// Ширина считается по шапке и первым 50 строкам данных.
func ApplyDefaultExcelFormatting(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil
	}

	end := colName(cols) + "1"
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", end, style)
	}
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for c := 0; c < cols; c++ {
		longest := 0
		for r := 0; r < min(len(rows), 51); r++ {
			if c < len(rows[r]) {
				longest = max(longest, visualLen(rows[r][c]))
			}
		}
		w := float64(longest) * 0.9
		w = max(w, 12)
		w = min(w, 40)
		col := colName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

// BuildChildReportFilename — имя xlsx-отчёта по одному ребёнку.
func BuildChildReportFilename(childName, tutorName string) string {
	base := fmt.Sprintf("Отчёт по ребёнку — %s — %s.xlsx",
		cleanName(childName),
		cleanName(tutorName),
	)
	return sanitizeFileName(base)
}

// BuildRosterFilename — имя сводного xlsx-отчёта наставника.
func BuildRosterFilename(tutorName string) string {
	base := fmt.Sprintf("Отчёт наставника — %s.xlsx", cleanName(tutorName))
	return sanitizeFileName(base)
}

// visualLen приближает ширину текста числом рун, таб считаем за 4.
func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n += 1
		}
	}
	return n
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
