package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebook/hospital-api/internal/models"
	"github.com/carebook/hospital-api/internal/scheduling"
)

// MongoStore implements AppointmentStore and DoctorStore on a mongo database.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) appointments() *mongo.Collection {
	return s.DB.Collection("appointments")
}

// EnsureIndexes creates the partial unique index over (doctorId, date,
// timeSlot) restricted to live statuses. This is the atomic guard that makes
// the booking pre-check safe under concurrent requests: the second insert for
// the same tuple fails with a duplicate-key error regardless of interleaving.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.appointments().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctorId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "timeSlot", Value: 1},
		},
		Options: options.Index().
			SetName("uniq_live_slot").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": models.LiveStatuses},
			}),
	})
	return err
}

func (s *MongoStore) Insert(ctx context.Context, apt *models.Appointment) error {
	_, err := s.appointments().InsertOne(ctx, apt)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlot
	}
	return err
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var apt models.Appointment
	err := s.appointments().FindOne(ctx, bson.M{"_id": id}).Decode(&apt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

func (s *MongoStore) FindLive(ctx context.Context, doctorID primitive.ObjectID, day time.Time, slot scheduling.Slot) (*models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     scheduling.StartOfDay(day),
		"timeSlot": slot.String(),
		"status":   bson.M{"$in": models.LiveStatuses},
	}
	var apt models.Appointment
	err := s.appointments().FindOne(ctx, filter).Decode(&apt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

func (s *MongoStore) BookedSlots(ctx context.Context, doctorID primitive.ObjectID, day time.Time) (map[scheduling.Slot]struct{}, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     scheduling.StartOfDay(day),
		"status":   bson.M{"$in": models.LiveStatuses},
	}
	cursor, err := s.appointments().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	booked := make(map[scheduling.Slot]struct{})
	for cursor.Next(ctx) {
		var apt models.Appointment
		if err := cursor.Decode(&apt); err != nil {
			return nil, err
		}
		booked[scheduling.Slot(apt.TimeSlot)] = struct{}{}
	}
	return booked, cursor.Err()
}

func (s *MongoStore) List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if f.DoctorID != nil {
		filter["doctorId"] = *f.DoctorID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.StartDate != nil {
		filter["date"] = bson.M{"$gte": scheduling.StartOfDay(*f.StartDate)}
	}
	if f.EndDate != nil {
		end := scheduling.StartOfDay(*f.EndDate)
		if d, ok := filter["date"].(bson.M); ok {
			d["$lte"] = end
		} else {
			filter["date"] = bson.M{"$lte": end}
		}
	}

	// Sort by day then slot string; slots are zero-padded HH:MM so the
	// lexicographic order is chronological.
	findOptions := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "timeSlot", Value: 1},
	})

	cursor, err := s.appointments().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var apt models.Appointment
	err := s.appointments().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&apt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

func (s *MongoStore) FindDoctor(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var doc models.Doctor
	err := s.DB.Collection("doctors").FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MongoStore) ListDoctors(ctx context.Context, departmentID primitive.ObjectID) ([]models.Doctor, error) {
	filter := bson.M{}
	if !departmentID.IsZero() {
		filter["departmentId"] = departmentID
	}
	cursor, err := s.DB.Collection("doctors").Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *MongoStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	cursor, err := s.DB.Collection("departments").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	departments := make([]models.Department, 0)
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}
