package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

const appointmentCollection = "appointments"

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *domain.Appointment) error
	// HasOverlap reports whether a scheduled or completed appointment already
	// occupies the same business/date/time slot.
	HasOverlap(ctx context.Context, businessID string, date time.Time, timeSlot string) (bool, error)
	ListByDateRange(ctx context.Context, businessID string, startDate, endDate time.Time) ([]domain.Appointment, error)
	ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Appointment, error)
}

type appointmentDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID primitive.ObjectID `bson:"business_id"`
	Date       time.Time          `bson:"date"`
	Time       string             `bson:"time"`
	Notes      string             `bson:"notes,omitempty"`
	Status     string             `bson:"status"`
}

func (doc *appointmentDocument) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:         doc.ID.Hex(),
		BusinessID: doc.BusinessID.Hex(),
		Date:       doc.Date,
		Time:       doc.Time,
		Notes:      doc.Notes,
		Status:     domain.AppointmentStatus(doc.Status),
	}
}

type mongoAppointmentRepository struct {
	collection *mongo.Collection
}

func NewMongoAppointmentRepository(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepository{collection: db.Collection(appointmentCollection)}
}

func (r *mongoAppointmentRepository) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	businessOID, err := primitive.ObjectIDFromHex(appointment.BusinessID)
	if err != nil {
		return err
	}

	doc := appointmentDocument{
		ID:         primitive.NewObjectID(),
		BusinessID: businessOID,
		Date:       appointment.Date,
		Time:       appointment.Time,
		Notes:      appointment.Notes,
		Status:     string(appointment.Status),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		logger.Error("CreateAppointment: failed to insert appointment", err)
		return err
	}

	appointment.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAppointmentRepository) HasOverlap(ctx context.Context, businessID string, date time.Time, timeSlot string) (bool, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return false, nil
	}

	filter := bson.M{
		"business_id": businessOID,
		"status":      bson.M{"$in": []string{string(domain.StatusScheduled), string(domain.StatusCompleted)}},
		"date":        date,
		"time":        timeSlot,
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		logger.Error("HasOverlap: count failed", err)
		return false, err
	}
	return count > 0, nil
}

func (r *mongoAppointmentRepository) ListByDateRange(ctx context.Context, businessID string, startDate, endDate time.Time) ([]domain.Appointment, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Appointment{}, nil
	}

	filter := bson.M{
		"business_id": businessOID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Appointment, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Appointment{}, nil
	}

	filter := bson.M{"business_id": businessOID}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Appointment, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Error("AppointmentRepository: query failed", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []domain.Appointment{}
	for cursor.Next(ctx) {
		var doc appointmentDocument
		if err := cursor.Decode(&doc); err != nil {
			logger.Error("AppointmentRepository: decode failed", err)
			return nil, err
		}
		appointments = append(appointments, doc.toDomain())
	}
	return appointments, cursor.Err()
}
