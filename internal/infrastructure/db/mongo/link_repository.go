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

const linkCollection = "affiliate_links"

type MongoLinkRepository struct {
	coll *mongo.Collection
}

func NewLinkRepository(db *mongo.Database) *MongoLinkRepository {
	return &MongoLinkRepository{coll: db.Collection(linkCollection)}
}

// EnsureIndexes creates the unique code index used by redirect lookups
// plus the per-affiliate listing index.
func (r *MongoLinkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, linkIndexModels())
	return err
}

func linkIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "affiliate_id", Value: 1}}},
	}
}

type mongoLink struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AffiliateID string             `bson:"affiliate_id"`
	VentureID   string             `bson:"venture_id"`
	EventID     string             `bson:"event_id,omitempty"`
	Code        string             `bson:"code"`
	TargetURL   string             `bson:"target_url"`
	QRCodeURL   string             `bson:"qr_code_url,omitempty"`
	Clicks      int64              `bson:"clicks"`
	Conversions int64              `bson:"conversions"`
	IsActive    bool               `bson:"is_active"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoLinkRepository) Create(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error) {
	doc := mongoLink{
		AffiliateID: link.AffiliateID,
		VentureID:   link.VentureID,
		EventID:     link.EventID,
		Code:        link.Code,
		TargetURL:   link.TargetURL,
		QRCodeURL:   link.QRCodeURL,
		Clicks:      link.Clicks,
		Conversions: link.Conversions,
		IsActive:    link.IsActive,
		CreatedAt:   link.CreatedAt.Unix(),
		UpdatedAt:   link.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert link: %w", err)
	}

	created := *link
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoLinkRepository) FindByCode(ctx context.Context, code string) (*domain.AffiliateLink, error) {
	var ml mongoLink
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&ml); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link: %w", err)
	}
	return toDomainLink(ml), nil
}

func (r *MongoLinkRepository) ListByAffiliate(ctx context.Context, affiliateID string) ([]domain.AffiliateLink, error) {
	cur, err := r.coll.Find(ctx, bson.M{"affiliate_id": affiliateID})
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer cur.Close(ctx)

	links := make([]domain.AffiliateLink, 0)
	for cur.Next(ctx) {
		var ml mongoLink
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode link: %w", err)
		}
		links = append(links, *toDomainLink(ml))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func (r *MongoLinkRepository) IncrementClicks(ctx context.Context, id string) error {
	return r.increment(ctx, id, "clicks")
}

func (r *MongoLinkRepository) IncrementConversions(ctx context.Context, id string) error {
	return r.increment(ctx, id, "conversions")
}

// increment is a single atomic counter update on the link row.
func (r *MongoLinkRepository) increment(ctx context.Context, id, field string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLinkNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func toDomainLink(ml mongoLink) *domain.AffiliateLink {
	return &domain.AffiliateLink{
		ID:          ml.ID.Hex(),
		AffiliateID: ml.AffiliateID,
		VentureID:   ml.VentureID,
		EventID:     ml.EventID,
		Code:        ml.Code,
		TargetURL:   ml.TargetURL,
		QRCodeURL:   ml.QRCodeURL,
		Clicks:      ml.Clicks,
		Conversions: ml.Conversions,
		IsActive:    ml.IsActive,
		CreatedAt:   unixToTime(ml.CreatedAt),
		UpdatedAt:   unixToTime(ml.UpdatedAt),
	}
}
