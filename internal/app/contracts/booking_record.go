package contracts

import (
	"context"
	"jadwalin-service/internal/app/models"
)

type BookingRecordRepository interface {
	CreateBookingRecord(ctx context.Context, record *models.BookingRecord) (*models.BookingRecord, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingRecord, error)
}
