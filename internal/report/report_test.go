package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tecnosoft/academy/internal/model"
)

func sampleBookings() []model.Booking {
	st := func(id int64, name string) model.Student {
		return model.Student{StudentID: id, Name: name}
	}
	course := model.Course{CourseID: 1, CourseName: "English A1", Price: 500}
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	b1 := model.NewBooking(st(1, "Sara"), course, 1, 300, 0, "2024-09-01", "BK-1", now)
	b2 := model.NewBooking(st(2, "Omar"), course, 1, 500, 50, "2024-09-01", "BK-2", now)
	b3 := model.NewBooking(st(3, "Lina"), course, 2, 100, 0, "2024-09-03", "BK-3", now)
	return []model.Booking{b1, b2, b3}
}

func TestBuildPayments_Unbounded(t *testing.T) {
	sum := BuildPayments(sampleBookings(), "", "")

	assert.Len(t, sum.Bookings, 3)
	assert.Equal(t, 900.0, sum.TotalPaid)
	assert.Equal(t, 50.0, sum.TotalDiscount)
	assert.Equal(t, 550.0, sum.TotalRemaining)

	require.Len(t, sum.Daily, 2)
	assert.Equal(t, DailyTotal{Date: "2024-09-01", Paid: 800}, sum.Daily[0])
	assert.Equal(t, DailyTotal{Date: "2024-09-03", Paid: 100}, sum.Daily[1])
}

func TestBuildPayments_RangeBoundsAreInclusive(t *testing.T) {
	sum := BuildPayments(sampleBookings(), "2024-09-01", "2024-09-01")
	assert.Len(t, sum.Bookings, 2)
	assert.Equal(t, 800.0, sum.TotalPaid)

	sum = BuildPayments(sampleBookings(), "2024-09-02", "")
	require.Len(t, sum.Bookings, 1)
	assert.Equal(t, "BK-3", sum.Bookings[0].BookingNumber)

	sum = BuildPayments(sampleBookings(), "2024-09-04", "")
	assert.Empty(t, sum.Bookings)
	assert.Empty(t, sum.Daily)
	assert.Zero(t, sum.TotalPaid)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payments.xlsx")
	sum := BuildPayments(sampleBookings(), "", "")
	require.NoError(t, WriteWorkbook(sum, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetSummary, SheetBookings}, f.GetSheetList())

	paid, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "900", paid)

	firstDate, err := f.GetCellValue(SheetSummary, "A8")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", firstDate)

	header, err := f.GetCellValue(SheetBookings, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Booking number", header)

	number, err := f.GetCellValue(SheetBookings, "A2")
	require.NoError(t, err)
	assert.Equal(t, "BK-1", number)

	rows, err := f.GetRows(SheetBookings)
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + three bookings
}
