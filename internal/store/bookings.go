package store

import (
	"context"
	"fmt"

	"github.com/tecnosoft/academy/internal/model"
)

// ListBookings returns every booking as an unordered snapshot at call time.
// An empty collection yields an empty slice, never nil and never an error.
func (s *Store) ListBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT booking_id, booking_number, student_id, course_id, student_name,
		       course_name, course_price, level, paid_amount, discount_amount,
		       remaining_amount, payment_date, booking_date
		FROM bookings
	`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		var bookingDate string
		if err := rows.Scan(
			&b.BookingID, &b.BookingNumber, &b.StudentID, &b.CourseID, &b.StudentName,
			&b.CourseName, &b.CoursePrice, &b.Level, &b.PaidAmount, &b.DiscountAmount,
			&b.RemainingAmount, &b.PaymentDate, &bookingDate,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if b.BookingDate, err = parseTime(bookingDate); err != nil {
			return nil, fmt.Errorf("scan booking: booking_date: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// InsertBooking persists a new booking as one atomic unit, assigning the
// next identity and writing it back into the record. Fails with a
// uniqueness StoreError when the booking number collides; the store is
// left unchanged on failure.
func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (booking_number, student_id, course_id, student_name,
		                      course_name, course_price, level, paid_amount,
		                      discount_amount, remaining_amount, payment_date, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.BookingNumber, b.StudentID, b.CourseID, b.StudentName,
		b.CourseName, b.CoursePrice, b.Level, b.PaidAmount,
		b.DiscountAmount, b.RemainingAmount, b.PaymentDate, formatTime(b.BookingDate),
	)
	if err != nil {
		return translateInsertError("bookings", err)
	}

	b.BookingID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert bookings: last insert id: %w", err)
	}
	return nil
}

// DeleteBooking removes exactly one booking by identity.
// No-op-safe: deleting an absent identity is not an error.
func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = ?`, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// RestoreBooking inserts a booking preserving its existing identity.
// Used only by backup restore.
func (s *Store) RestoreBooking(ctx context.Context, b model.Booking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (booking_id, booking_number, student_id, course_id, student_name,
		                      course_name, course_price, level, paid_amount,
		                      discount_amount, remaining_amount, payment_date, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.BookingID, b.BookingNumber, b.StudentID, b.CourseID, b.StudentName,
		b.CourseName, b.CoursePrice, b.Level, b.PaidAmount,
		b.DiscountAmount, b.RemainingAmount, b.PaymentDate, formatTime(b.BookingDate),
	)
	if err != nil {
		return translateInsertError("bookings", err)
	}
	return nil
}
