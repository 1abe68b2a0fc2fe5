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
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

const affiliateCollection = "affiliates"

type MongoAffiliateRepository struct {
	coll *mongo.Collection
}

func NewAffiliateRepository(db *mongo.Database) *MongoAffiliateRepository {
	return &MongoAffiliateRepository{coll: db.Collection(affiliateCollection)}
}

// EnsureIndexes creates the unique code index plus the user lookup index.
func (r *MongoAffiliateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, affiliateIndexModels())
	return err
}

func affiliateIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
}

type mongoAffiliate struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Code           string             `bson:"code"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone,omitempty"`
	IsActive       bool               `bson:"is_active"`
	CommissionRate float64            `bson:"commission_rate"`
	TotalEarnings  float64            `bson:"total_earnings"`
	TotalReferrals int                `bson:"total_referrals"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (r *MongoAffiliateRepository) Create(ctx context.Context, aff *domain.Affiliate) (*domain.Affiliate, error) {
	doc := mongoAffiliate{
		UserID:         aff.UserID,
		Code:           aff.Code,
		Name:           aff.Name,
		Email:          aff.Email,
		Phone:          aff.Phone,
		IsActive:       aff.IsActive,
		CommissionRate: aff.CommissionRate,
		TotalEarnings:  aff.TotalEarnings,
		TotalReferrals: aff.TotalReferrals,
		CreatedAt:      aff.CreatedAt.Unix(),
		UpdatedAt:      aff.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert affiliate: %w", err)
	}

	created := *aff
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAffiliateRepository) FindByID(ctx context.Context, id string) (*domain.Affiliate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAffiliateNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAffiliateRepository) FindByUserID(ctx context.Context, userID string) (*domain.Affiliate, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *MongoAffiliateRepository) FindByCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *MongoAffiliateRepository) Update(ctx context.Context, id string, upd ports.AffiliateUpdate) (*domain.Affiliate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAffiliateNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.CommissionRate != nil {
		set["commission_rate"] = *upd.CommissionRate
	}

	var ma mongoAffiliate
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ma)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAffiliateNotFound
		}
		return nil, fmt.Errorf("update affiliate: %w", err)
	}

	return toDomainAffiliate(ma), nil
}

func (r *MongoAffiliateRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAffiliateNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("deactivate affiliate: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAffiliateNotFound
	}
	return nil
}

// AddConversion bumps the cumulative counters in a single atomic update.
func (r *MongoAffiliateRepository) AddConversion(ctx context.Context, id string, amount float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAffiliateNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$inc": bson.M{"total_earnings": amount, "total_referrals": 1},
		"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("add conversion: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAffiliateNotFound
	}
	return nil
}

func (r *MongoAffiliateRepository) findOne(ctx context.Context, filter bson.M) (*domain.Affiliate, error) {
	var ma mongoAffiliate
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAffiliateNotFound
		}
		return nil, fmt.Errorf("find affiliate: %w", err)
	}
	return toDomainAffiliate(ma), nil
}

func toDomainAffiliate(ma mongoAffiliate) *domain.Affiliate {
	return &domain.Affiliate{
		ID:             ma.ID.Hex(),
		UserID:         ma.UserID,
		Code:           ma.Code,
		Name:           ma.Name,
		Email:          ma.Email,
		Phone:          ma.Phone,
		IsActive:       ma.IsActive,
		CommissionRate: ma.CommissionRate,
		TotalEarnings:  ma.TotalEarnings,
		TotalReferrals: ma.TotalReferrals,
		CreatedAt:      unixToTime(ma.CreatedAt),
		UpdatedAt:      unixToTime(ma.UpdatedAt),
	}
}
