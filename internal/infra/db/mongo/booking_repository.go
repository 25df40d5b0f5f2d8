package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "rentwear/internal/domain/booking"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	domainrange "rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("rental_bookings")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "booking_date", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "booking_date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type bookingDocument struct {
	ID              string              `bson:"_id"`
	SessionID       string              `bson:"session_id"`
	ProductID       string              `bson:"product_id"`
	ProductName     string              `bson:"product_name"`
	Start           int64               `bson:"start"`
	End             int64               `bson:"end"`
	Days            int                 `bson:"days"`
	TotalAmount     money.Money         `bson:"total_amount"`
	SecurityDeposit money.Money         `bson:"security_deposit"`
	Calculation     domainpricing.Quote `bson:"calculation"`
	Status          string              `bson:"status"`
	BookingDate     int64               `bson:"booking_date"`
	UpdatedAt       int64               `bson:"updated_at"`
	Version         int64               `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:              string(b.ID),
		SessionID:       b.SessionID,
		ProductID:       string(b.ProductID),
		ProductName:     b.ProductName,
		Start:           b.Range.Start.UnixMilli(),
		End:             b.Range.End.UnixMilli(),
		Days:            b.Days,
		TotalAmount:     b.TotalAmount,
		SecurityDeposit: b.SecurityDeposit,
		Calculation:     b.Calculation,
		Status:          string(b.Status),
		BookingDate:     b.BookingDate.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
		Version:         b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		SessionID:       d.SessionID,
		ProductID:       domaincatalog.ProductID(d.ProductID),
		ProductName:     d.ProductName,
		Range:           domainrange.DateRange{Start: timestampToTime(d.Start), End: timestampToTime(d.End)},
		Days:            d.Days,
		TotalAmount:     d.TotalAmount,
		SecurityDeposit: d.SecurityDeposit,
		Calculation:     d.Calculation,
		Status:          domainbooking.Status(d.Status),
		BookingDate:     timestampToTime(d.BookingDate),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
