// Package report builds the payments summary over bookings: totals and
// per-date paid amounts for a payment-date range, exported as a
// spreadsheet workbook.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tecnosoft/academy/internal/model"
)

// DailyTotal is the paid amount aggregated over one payment date.
type DailyTotal struct {
	Date string
	Paid float64
}

// Summary is the payments report over a date range.
type Summary struct {
	From string // inclusive lower bound, empty = unbounded
	To   string // inclusive upper bound, empty = unbounded

	Bookings       []model.Booking
	TotalPaid      float64
	TotalDiscount  float64
	TotalRemaining float64
	Daily          []DailyTotal
}

// BuildPayments filters bookings by payment date and aggregates totals.
// Bounds are inclusive calendar dates; an empty bound is open. Dates in
// DateLayout form compare correctly as strings.
func BuildPayments(bookings []model.Booking, from, to string) Summary {
	sum := Summary{From: from, To: to, Bookings: []model.Booking{}}

	daily := map[string]float64{}
	for _, b := range bookings {
		if from != "" && b.PaymentDate < from {
			continue
		}
		if to != "" && b.PaymentDate > to {
			continue
		}
		sum.Bookings = append(sum.Bookings, b)
		sum.TotalPaid += b.PaidAmount
		sum.TotalDiscount += b.DiscountAmount
		sum.TotalRemaining += b.RemainingAmount
		daily[b.PaymentDate] += b.PaidAmount
	}

	for date, paid := range daily {
		sum.Daily = append(sum.Daily, DailyTotal{Date: date, Paid: paid})
	}
	sort.Slice(sum.Daily, func(i, j int) bool { return sum.Daily[i].Date < sum.Daily[j].Date })

	return sum
}

// Sheet names in the exported workbook.
const (
	SheetSummary  = "Summary"
	SheetBookings = "Bookings"
)

// WriteWorkbook renders the summary as an xlsx workbook at path: a
// Summary sheet with the totals and per-date paid amounts, and a Bookings
// sheet listing the filtered bookings.
func WriteWorkbook(sum Summary, path string) error {
	f := excelize.NewFile()
	defer func() {
		// Close releases the in-memory workbook; SaveAs already flushed it.
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	rangeLabel := "all dates"
	if sum.From != "" || sum.To != "" {
		rangeLabel = fmt.Sprintf("%s .. %s", sum.From, sum.To)
	}
	summaryRows := [][]any{
		{"Payments report", rangeLabel},
		{"Bookings", len(sum.Bookings)},
		{"Total paid", sum.TotalPaid},
		{"Total discount", sum.TotalDiscount},
		{"Total remaining", sum.TotalRemaining},
		{},
		{"Date", "Paid"},
	}
	for _, d := range sum.Daily {
		summaryRows = append(summaryRows, []any{d.Date, d.Paid})
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetBookings); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	bookingRows := [][]any{
		{"Booking number", "Student", "Course", "Level", "Paid", "Discount", "Remaining", "Payment date"},
	}
	for _, b := range sum.Bookings {
		bookingRows = append(bookingRows, []any{
			b.BookingNumber, b.StudentName, b.CourseName, b.Level,
			b.PaidAmount, b.DiscountAmount, b.RemainingAmount, b.PaymentDate,
		})
	}
	if err := writeRows(f, SheetBookings, bookingRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeRows writes rows top to bottom starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
		}
	}
	return nil
}
