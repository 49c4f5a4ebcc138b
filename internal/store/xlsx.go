package store

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

// SheetName is the worksheet holding exported rows.
const SheetName = "trending"

var sheetHeader = []interface{}{
	dataset.ColChannelName, dataset.ColLike, dataset.ColDislike, dataset.ColView, dataset.ColComment,
	dataset.ColPublishTime, dataset.ColTrendingTime, "publish_date", "trending_date",
	"trending_month_name", "trending_day_name",
}

// WriteXLSX writes t as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &sheetHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := 2
	for r := range t.All() {
		row := rowFrom(r)
		cells := []interface{}{
			row.ChannelName, row.Like, row.Dislike, row.View, row.Comment,
			row.PublishTime, row.TrendingTime, row.PublishDate, row.TrendingDate,
			row.TrendingMonthName, row.TrendingDayName,
		}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", line, err)
		}
		line++
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
