package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

const commissionCollection = "affiliate_commissions"

type MongoCommissionRepository struct {
	coll *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *MongoCommissionRepository {
	return &MongoCommissionRepository{coll: db.Collection(commissionCollection)}
}

type mongoCommission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AffiliateID  string             `bson:"affiliate_id"`
	LinkID       string             `bson:"link_id,omitempty"`
	Amount       float64            `bson:"amount"`
	RateSnapshot float64            `bson:"commission_rate"`
	Status       string             `bson:"status"`
	Description  string             `bson:"description,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoCommissionRepository) Create(ctx context.Context, c *domain.Commission) (*domain.Commission, error) {
	doc := mongoCommission{
		AffiliateID:  c.AffiliateID,
		LinkID:       c.LinkID,
		Amount:       c.Amount,
		RateSnapshot: c.RateSnapshot,
		Status:       string(c.Status),
		Description:  c.Description,
		CreatedAt:    c.CreatedAt.Unix(),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert commission: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCommissionRepository) FindByID(ctx context.Context, id string) (*domain.Commission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommissionNotFound
	}

	var mc mongoCommission
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, fmt.Errorf("find commission: %w", err)
	}
	return toDomainCommission(mc), nil
}

func (r *MongoCommissionRepository) ListByAffiliateSince(ctx context.Context, affiliateID string, since time.Time) ([]domain.Commission, error) {
	filter := bson.M{"affiliate_id": affiliateID}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since.Unix()}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer cur.Close(ctx)

	commissions := make([]domain.Commission, 0)
	for cur.Next(ctx) {
		var mc mongoCommission
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode commission: %w", err)
		}
		commissions = append(commissions, *toDomainCommission(mc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	return commissions, nil
}

// UpdateStatus filters on both id and the expected current status so two
// concurrent updates cannot both win; the loser sees no matching document.
func (r *MongoCommissionRepository) UpdateStatus(ctx context.Context, id string, from, to domain.CommissionStatus) (*domain.Commission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommissionNotFound
	}

	var mc mongoCommission
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC().Unix()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// The document exists but its status moved under us (or it was
			// deleted); either way the requested transition is no longer valid.
			return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, from, to)
		}
		return nil, fmt.Errorf("update commission status: %w", err)
	}
	return toDomainCommission(mc), nil
}

func toDomainCommission(mc mongoCommission) *domain.Commission {
	return &domain.Commission{
		ID:           mc.ID.Hex(),
		AffiliateID:  mc.AffiliateID,
		LinkID:       mc.LinkID,
		Amount:       mc.Amount,
		RateSnapshot: mc.RateSnapshot,
		Status:       domain.CommissionStatus(mc.Status),
		Description:  mc.Description,
		CreatedAt:    unixToTime(mc.CreatedAt),
		UpdatedAt:    unixToTime(mc.UpdatedAt),
	}
}
