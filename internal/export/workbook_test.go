package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vozlink/vozlink-client/internal/models"
)

func TestRosterWorkbook(t *testing.T) {
	children := []models.PersonRef{
		{ID: 7, Name: "Лукас", Email: "lucas@example.com"},
	}
	text := "Hola"
	assignments := map[int64][]models.ChildMessage{
		7: {{
			ID: 1, ChildID: 7, MessageID: 5, IsFavorite: true,
			AssignedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Message:    &models.Message{ID: 5, Text: text, CategoryName: "Saludos"},
		}},
	}
	stats := map[int64]models.ChildStats{
		7: {ChildID: 7, TotalMessages: 1, FavoriteMessages: 1, CategoriesUsed: 1},
	}

	wb, err := NewWorkbook(RosterSheets(children, assignments, stats))
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := wb.File.GetCellValue("Дети", "B2"); got != "Лукас" {
		t.Fatalf("ожидали имя ребёнка в B2, получили %q", got)
	}
	if got, _ := wb.File.GetCellValue("Назначения", "B2"); got != "Hola" {
		t.Fatalf("ожидали текст сообщения в B2, получили %q", got)
	}
	if got, _ := wb.File.GetCellValue("Назначения", "D2"); got != "да" {
		t.Fatalf("ожидали отметку избранного, получили %q", got)
	}
	if got, _ := wb.File.GetCellValue("Статистика", "A1"); got != "Ребёнок" {
		t.Fatalf("ожидали заголовок листа статистики, получили %q", got)
	}

	// оформление применяется к каждому листу: ширина в рамках эвристики
	for _, sheet := range []string{"Дети", "Назначения", "Статистика"} {
		w, err := wb.File.GetColWidth(sheet, "B")
		if err != nil {
			t.Fatal(err)
		}
		if w < 12 || w > 40 {
			t.Fatalf("ширина колонки B листа %q вне эвристики: %v", sheet, w)
		}
	}
}

func TestSaveTempUsesGivenName(t *testing.T) {
	wb, err := NewWorkbook([]SheetSpec{{Title: "Дети", Header: []string{"ID"}}})
	if err != nil {
		t.Fatal(err)
	}
	name := BuildRosterFilename("Мария")
	path, err := wb.SaveTemp(name)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })

	if filepath.Base(path) != name {
		t.Fatalf("файл должен называться %q, получили %q", name, filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("книга должна быть записана: %v", err)
	}
}

func TestFilenames(t *testing.T) {
	got := BuildChildReportFilename("Лукас / тест", "Мария")
	if got != "Отчёт по ребёнку — Лукас _ тест — Мария.xlsx" {
		t.Fatalf("недопустимые символы должны замениться: %q", got)
	}
	if BuildRosterFilename("") != "Отчёт наставника — —.xlsx" {
		t.Fatalf("пустое имя заменяется прочерком: %q", BuildRosterFilename(""))
	}
}
