package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "retailstore/backend/internal/domain/customer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const customersCollection = "customers"

// CustomerRepository persists customers in a MongoDB collection.
type CustomerRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewCustomerRepository constructs a repository. Every call is bounded by
// opTimeout so a degraded store cannot hold requests indefinitely.
func NewCustomerRepository(db *Database, opTimeout time.Duration) *CustomerRepository {
	return &CustomerRepository{
		coll:      db.Collection(customersCollection),
		opTimeout: opTimeout,
	}
}

// Ensure CustomerRepository implements the domain interface.
var _ domain.Repository = (*CustomerRepository)(nil)

type customerDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Phone        string             `bson:"phone,omitempty"`
	Address      string             `bson:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *CustomerRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opTimeout)
}

// Create inserts a new customer and backfills the store-assigned id.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	doc := toDocument(customer)
	doc.ID = primitive.NilObjectID
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	customer.ID = oid.Hex()
	return nil
}

// List returns all customers matching the filter, every customer when the
// filter is empty.
func (r *CustomerRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Customer, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Username != "" {
		query["username"] = filter.Username
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer cursor.Close(ctx)

	customers := []*domain.Customer{}
	for cursor.Next(ctx) {
		var doc customerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding customer: %w", err)
		}
		customers = append(customers, fromDocument(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

// GetByID fetches a customer by its hex id.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any stored record.
		return nil, domain.ErrNotFound
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var doc customerDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching customer: %w", err)
	}
	return fromDocument(&doc), nil
}

// Replace overwrites all mutable fields of the stored customer.
func (r *CustomerRepository) Replace(ctx context.Context, customer *domain.Customer) error {
	oid, err := primitive.ObjectIDFromHex(customer.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	doc := toDocument(customer)
	doc.ID = oid
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replacing customer: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the customer matching the hex id.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDocument(c *domain.Customer) *customerDocument {
	doc := &customerDocument{
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(c.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func fromDocument(doc *customerDocument) *domain.Customer {
	return &domain.Customer{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Phone:        doc.Phone,
		Address:      doc.Address,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
