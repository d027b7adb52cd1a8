package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

const collectionLeads = "leads"

// LeadRepository implements ports.LeadRepository using MongoDB. Leads
// carry no owner field; ownership checks happen against the parent
// customer in the service layer.
type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

func statusFilter(status domain.LeadStatus, filter bson.M) bson.M {
	if status != "" {
		filter["status"] = string(status)
	}
	return filter
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lead
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return &l, nil
}

func (r *LeadRepository) ListByCustomer(ctx context.Context, customerID string, status domain.LeadStatus) ([]*domain.Lead, error) {
	return r.list(ctx, statusFilter(status, bson.M{"customer_id": customerID}))
}

// ListByCustomerIDs queries leads over an explicit customer id set. An
// empty set is encoded as an empty $in array, which matches nothing —
// it must never degrade to an unrestricted query.
func (r *LeadRepository) ListByCustomerIDs(ctx context.Context, customerIDs []string, status domain.LeadStatus) ([]*domain.Lead, error) {
	if customerIDs == nil {
		customerIDs = []string{}
	}
	return r.list(ctx, statusFilter(status, bson.M{"customer_id": bson.M{"$in": customerIDs}}))
}

func (r *LeadRepository) ListAll(ctx context.Context, status domain.LeadStatus) ([]*domain.Lead, error) {
	return r.list(ctx, statusFilter(status, bson.M{}))
}

func (r *LeadRepository) list(ctx context.Context, filter bson.M) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	leads := []*domain.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) UpdateFields(ctx context.Context, id string, fields ports.LeadUpdate) (*domain.Lead, error) {
	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.Value != nil {
		set["value"] = *fields.Value
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Lead
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return &updated, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) DeleteByCustomer(ctx context.Context, customerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return 0, fmt.Errorf("delete leads by customer: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes the parent-customer lookups and
// cascade deletes rely on.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
