// Package model defines the four record kinds managed by the academy
// database - students, courses, bookings, and attendance records - along
// with their validation rules and the booking number generator.
//
// Records are plain structs with no behavior beyond construction and
// validation; all persistence lives in internal/store. Fields marked as
// snapshots are copied from the related entity at creation time and are
// never re-derived from it afterwards.
package model

import "time"

// DateLayout is the calendar-date form used for payment and attendance
// dates. Attendance is tracked per logical day, with no time component.
const DateLayout = "2006-01-02"

// SiblingFlag records whether a student has enrolled siblings.
// It is an enumerated yes/no value, not a bool, to match the intake form.
type SiblingFlag string

const (
	SiblingYes SiblingFlag = "yes"
	SiblingNo  SiblingFlag = "no"
)

// Student is a registered student. The identity is assigned by the store
// on insert and is stable for the lifetime of the record. Phone numbers
// are unique across all students.
type Student struct {
	StudentID   int64       `json:"studentId"`
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Address     string      `json:"address,omitempty"`
	Phone       string      `json:"phone"`
	HasSiblings SiblingFlag `json:"hasSiblings"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Course is an offered course. Course names are unique. Price is the only
// field that may change after creation, and only through the privileged
// price-correction path.
type Course struct {
	CourseID   int64     `json:"courseId"`
	CourseName string    `json:"courseName"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Booking is one enrollment transaction. StudentName, CourseName and
// CoursePrice are snapshots taken at booking time; later edits to the
// student or course do not alter them. RemainingAmount is computed once at
// creation as CoursePrice - PaidAmount - DiscountAmount and stored; it may
// be negative when overpaid.
type Booking struct {
	BookingID       int64     `json:"bookingId"`
	BookingNumber   string    `json:"bookingNumber"`
	StudentID       int64     `json:"studentId"`
	CourseID        int64     `json:"courseId"`
	StudentName     string    `json:"studentName"`
	CourseName      string    `json:"courseName"`
	CoursePrice     float64   `json:"coursePrice"`
	Level           int       `json:"level"`
	PaidAmount      float64   `json:"paidAmount"`
	DiscountAmount  float64   `json:"discountAmount"`
	RemainingAmount float64   `json:"remainingAmount"`
	PaymentDate     string    `json:"paymentDate"`
	BookingDate     time.Time `json:"bookingDate"`
}

// AttendanceRecord is one check-in event. Records are append-only; checking
// in the same student twice on one day creates two records. StudentName is
// a snapshot of the student's name at check-in time.
type AttendanceRecord struct {
	AttendanceID int64  `json:"attendanceId"`
	StudentID    int64  `json:"studentId"`
	StudentName  string `json:"studentName"`
	Date         string `json:"date"`
}

// NewBooking builds a booking for the given student and course, capturing
// the denormalized snapshot fields and the fixed remaining amount.
// paymentDate must be in DateLayout form; now stamps the booking date.
func NewBooking(student Student, course Course, level int, paid, discount float64, paymentDate string, number string, now time.Time) Booking {
	return Booking{
		BookingNumber:   number,
		StudentID:       student.StudentID,
		CourseID:        course.CourseID,
		StudentName:     student.Name,
		CourseName:      course.CourseName,
		CoursePrice:     course.Price,
		Level:           level,
		PaidAmount:      paid,
		DiscountAmount:  discount,
		RemainingAmount: course.Price - paid - discount,
		PaymentDate:     paymentDate,
		BookingDate:     now,
	}
}

// NewAttendanceRecord builds a check-in record for the student dated to
// the calendar day of now.
func NewAttendanceRecord(student Student, now time.Time) AttendanceRecord {
	return AttendanceRecord{
		StudentID:   student.StudentID,
		StudentName: student.Name,
		Date:        now.Format(DateLayout),
	}
}
