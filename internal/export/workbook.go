package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vozlink/vozlink-client/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type Workbook struct {
	File *excelize.File
}

func NewWorkbook(sheets []SheetSpec) (*Workbook, error) {
	f := excelize.NewFile()

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			// переиспользуем дефолтный Sheet1 под первый лист
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		// заголовки
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		// строки
		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		if err := ApplyDefaultExcelFormatting(f, name); err != nil {
			return nil, fmt.Errorf("format sheet %s: %w", name, err)
		}
	}
	return &Workbook{File: f}, nil
}

// SaveTemp пишет книгу во временный каталог под заданным именем.
// Пустое имя заменяется датированным vozlink_<дата>.xlsx.
func (w *Workbook) SaveTemp(name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("vozlink_%s.xlsx", time.Now().Format("2006-01-02"))
	}
	path := filepath.Join(os.TempDir(), name)
	return path, w.File.SaveAs(path)
}

// RosterSheets собирает листы отчёта наставника: дети, их назначения, статистика.
func RosterSheets(children []models.PersonRef, assignments map[int64][]models.ChildMessage, stats map[int64]models.ChildStats) []SheetSpec {
	childSheet := SheetSpec{
		Title:  "Дети",
		Header: []string{"ID", "Имя", "Email"},
	}
	for _, c := range children {
		childSheet.Rows = append(childSheet.Rows, []string{
			fmt.Sprintf("%d", c.ID), c.Name, c.Email,
		})
	}

	asgSheet := SheetSpec{
		Title:  "Назначения",
		Header: []string{"Ребёнок", "Сообщение", "Категория", "Избранное", "Назначено"},
	}
	for _, c := range children {
		for _, cm := range assignments[c.ID] {
			text, category := "", ""
			if cm.Message != nil {
				text, category = cm.Message.Text, cm.Message.CategoryName
			}
			fav := ""
			if cm.IsFavorite {
				fav = "да"
			}
			asgSheet.Rows = append(asgSheet.Rows, []string{
				c.Name, text, category, fav, cm.AssignedAt.Format("2006-01-02 15:04"),
			})
		}
	}

	statSheet := SheetSpec{
		Title:  "Статистика",
		Header: []string{"Ребёнок", "Сообщений", "Избранных", "Категорий"},
	}
	for _, c := range children {
		st, ok := stats[c.ID]
		if !ok {
			continue
		}
		statSheet.Rows = append(statSheet.Rows, []string{
			c.Name,
			fmt.Sprintf("%d", st.TotalMessages),
			fmt.Sprintf("%d", st.FavoriteMessages),
			fmt.Sprintf("%d", st.CategoriesUsed),
		})
	}

	return []SheetSpec{childSheet, asgSheet, statSheet}
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
