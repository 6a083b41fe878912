package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const productCollection = "products"

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListActiveProducts(ctx context.Context, businessID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	SetStock(ctx context.Context, businessID, productID string, stock int) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, businessID, productID string) (*domain.Product, error)

	// Used by the sale module. DecrementStock is a single conditional update:
	// it only matches while stock >= quantity and the product is active and
	// owned by the business, and reports ErrInsufficientStock on no match.
	FindActiveByIDs(ctx context.Context, businessID string, productIDs []string) ([]domain.Product, error)
	DecrementStock(ctx context.Context, businessID, productID string, quantity int) error
	IncrementStock(ctx context.Context, businessID, productID string, quantity int) error
}

// productDocument is the persisted shape; prices are stored as Decimal128.
type productDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	BusinessID primitive.ObjectID   `bson:"business_id"`
	Name       string               `bson:"name"`
	Price      primitive.Decimal128 `bson:"price"`
	Stock      int                  `bson:"stock"`
	Category   string               `bson:"category"`
	IsActive   bool                 `bson:"is_active"`
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.Decimal.String() is always a valid decimal literal
		return primitive.Decimal128{}
	}
	return d128
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

func (doc *productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:         doc.ID.Hex(),
		BusinessID: doc.BusinessID.Hex(),
		Name:       doc.Name,
		Price:      fromDecimal128(doc.Price),
		Stock:      doc.Stock,
		Category:   doc.Category,
		IsActive:   doc.IsActive,
	}
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection(productCollection)}
}

// activeFilter scopes every read and write to one tenant's active products.
func activeFilter(businessID primitive.ObjectID, productID primitive.ObjectID) bson.M {
	return bson.M{"_id": productID, "business_id": businessID, "is_active": true}
}

func (r *mongoProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	businessOID, err := primitive.ObjectIDFromHex(product.BusinessID)
	if err != nil {
		return ErrProductNotFound
	}

	doc := productDocument{
		ID:         primitive.NewObjectID(),
		BusinessID: businessOID,
		Name:       product.Name,
		Price:      toDecimal128(product.Price),
		Stock:      product.Stock,
		Category:   product.Category,
		IsActive:   true,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}

	product.ID = doc.ID.Hex()
	product.IsActive = true
	return nil
}

func (r *mongoProductRepository) ListActiveProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Product{}, nil
	}

	filter := bson.M{"business_id": businessOID, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Error("ListActiveProducts: query failed", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			logger.Error("ListActiveProducts: decode failed", err)
			return nil, err
		}
		products = append(products, doc.toDomain())
	}
	return products, cursor.Err()
}

func (r *mongoProductRepository) findOneAndUpdate(ctx context.Context, businessID, productID string, update bson.M) (*domain.Product, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err = r.collection.FindOneAndUpdate(ctx, activeFilter(businessOID, productOID), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		logger.Error("findOneAndUpdate: update failed", err)
		return nil, err
	}

	product := doc.toDomain()
	return &product, nil
}

func (r *mongoProductRepository) UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Price != nil {
		set["price"] = toDecimal128(*req.Price)
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	return r.findOneAndUpdate(ctx, businessID, productID, bson.M{"$set": set})
}

func (r *mongoProductRepository) SetStock(ctx context.Context, businessID, productID string, stock int) (*domain.Product, error) {
	return r.findOneAndUpdate(ctx, businessID, productID, bson.M{"$set": bson.M{"stock": stock}})
}

func (r *mongoProductRepository) DeactivateProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	return r.findOneAndUpdate(ctx, businessID, productID, bson.M{"$set": bson.M{"is_active": false}})
}

func (r *mongoProductRepository) FindActiveByIDs(ctx context.Context, businessID string, productIDs []string) ([]domain.Product, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Product{}, nil
	}

	oids := make([]primitive.ObjectID, 0, len(productIDs))
	for _, id := range productIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// unknown format can never match a stored product; skipping it
			// surfaces as a count mismatch in the caller
			continue
		}
		oids = append(oids, oid)
	}

	filter := bson.M{
		"_id":         bson.M{"$in": oids},
		"business_id": businessOID,
		"is_active":   true,
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Error("FindActiveByIDs: query failed", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			logger.Error("FindActiveByIDs: decode failed", err)
			return nil, err
		}
		products = append(products, doc.toDomain())
	}
	return products, cursor.Err()
}

func (r *mongoProductRepository) DecrementStock(ctx context.Context, businessID, productID string, quantity int) error {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return ErrInsufficientStock
	}
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInsufficientStock
	}

	filter := bson.M{
		"_id":         productOID,
		"business_id": businessOID,
		"stock":       bson.M{"$gte": quantity},
		"is_active":   true,
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		logger.Error("DecrementStock: update failed", err)
		return err
	}
	if res.ModifiedCount != 1 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *mongoProductRepository) IncrementStock(ctx context.Context, businessID, productID string, quantity int) error {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return ErrProductNotFound
	}
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}

	filter := bson.M{"_id": productOID, "business_id": businessOID}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": quantity}})
	if err != nil {
		logger.Error("IncrementStock: update failed", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
