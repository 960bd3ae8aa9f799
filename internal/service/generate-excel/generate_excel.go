package generate_excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

const sheet = "Production"

var headers = []string{
	"Schedule", "Date", "Recipe", "Order Volume", "Batches", "Quantity", "Status",
	"Assigned Batches", "Completed Batches", "Staff", "Equipment",
}

type GenerateExcelStorage interface {
	ListSchedules(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel renders one row per schedule between from and to (inclusive) into an xlsx workbook.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, from, to string) ([]byte, error) {
	if from > to {
		return nil, apperr.Validation("from must not be after to")
	}

	schedules, err := g.storage.ListSchedules(ctx, storage.ScheduleFilter{
		From:  from,
		To:    to,
		Sort:  "schedule_date",
		Order: "ASC",
	})
	if err != nil {
		return nil, apperr.Ensure(fmt.Errorf("fetch schedules: %w", err))
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	for i, sc := range schedules {
		row := i + 2
		values := []interface{}{
			sc.ID,
			sc.Date,
			sc.RecipeName,
			sc.OrderVolume,
			sc.BatchNumber,
			sc.QuantityToProduce,
			string(sc.Status),
			sc.AssignedBatches,
			sc.CompletedBatches,
			staffNames(sc.Users),
			equipmentNames(sc.Equipment),
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellName(col+1, row), v)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "I", 15)
	f.SetColWidth(sheet, "J", "K", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func staffNames(users []storage.AssignedUser) string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = fmt.Sprintf("%s (%s)", u.FullName, u.Role)
	}
	return strings.Join(names, ", ")
}

func equipmentNames(items []storage.AssignedEquipment) string {
	names := make([]string, len(items))
	for i, e := range items {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}
