package contests

import (
	"fmt"
	"net/http"
	"time"

	"api/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// [GET] ExportContestsExcel
// @Summary Export the aggregated contest list as an Excel file
// @Description One row per contest, sorted by start time ascending
// @Tags Contests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} map[string]string
// @Router /contests/export [get]
func ExportContestsExcel(c *gin.Context) {
	contests := aggregator.GetAllContestsSorted(c.Request.Context())

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Contests"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Platform", "Name", "Slug", "Start Time", "Duration", "Status", "Link"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, contest := range toResponses(contests) {
		values := []interface{}{
			string(contest.Platform),
			contest.Name,
			contest.Slug,
			contest.Date.Format(time.RFC3339),
			contest.Duration,
			contest.Status,
			contest.Link,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := fmt.Sprintf("contests-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
