package bookingrecords

import (
	"context"
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type bookingRecordRepository struct {
	Collection *mongo.Collection
}

var (
	bookingRecordRepositoryInstance contracts.BookingRecordRepository
	onceNewBookingRecordRepository  sync.Once
)

func NewBookingRecordRepository(client *mongo.Client, dbName, collectionName string) contracts.BookingRecordRepository {
	onceNewBookingRecordRepository.Do(func() {
		bookingRecordRepositoryInstance = &bookingRecordRepository{
			Collection: client.Database(dbName).Collection(collectionName),
		}
	})
	return bookingRecordRepositoryInstance
}

func (r *bookingRecordRepository) CreateBookingRecord(ctx context.Context, record *models.BookingRecord) (*models.BookingRecord, error) {
	_, err := r.Collection.InsertOne(ctx, record)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return record, nil
}

func (r *bookingRecordRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingRecord, error) {
	record := new(models.BookingRecord)
	err := r.Collection.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return record, nil
}
