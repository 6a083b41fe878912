package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
)

const saleCollection = "sales"

type SaleRepository interface {
	// InsertSale appends one completed sale. Sales are immutable once written.
	InsertSale(ctx context.Context, sale *domain.Sale) error
	ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Sale, error)
}

type saleItemDocument struct {
	ProductID primitive.ObjectID   `bson:"product_id"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
}

type saleDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	BusinessID primitive.ObjectID   `bson:"business_id"`
	Date       time.Time            `bson:"date"`
	Items      []saleItemDocument   `bson:"items"`
	Total      primitive.Decimal128 `bson:"total"`
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
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

func (doc *saleDocument) toDomain() domain.Sale {
	items := make([]domain.SaleItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = domain.SaleItem{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			Price:     fromDecimal128(item.Price),
		}
	}
	return domain.Sale{
		ID:         doc.ID.Hex(),
		BusinessID: doc.BusinessID.Hex(),
		Date:       doc.Date,
		Items:      items,
		Total:      fromDecimal128(doc.Total),
	}
}

type mongoSaleRepository struct {
	collection *mongo.Collection
}

func NewMongoSaleRepository(db *mongo.Database) SaleRepository {
	return &mongoSaleRepository{collection: db.Collection(saleCollection)}
}

func (r *mongoSaleRepository) InsertSale(ctx context.Context, sale *domain.Sale) error {
	businessOID, err := primitive.ObjectIDFromHex(sale.BusinessID)
	if err != nil {
		return err
	}

	items := make([]saleItemDocument, len(sale.Items))
	for i, item := range sale.Items {
		productOID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return err
		}
		items[i] = saleItemDocument{
			ProductID: productOID,
			Quantity:  item.Quantity,
			Price:     toDecimal128(item.Price),
		}
	}

	doc := saleDocument{
		ID:         primitive.NewObjectID(),
		BusinessID: businessOID,
		Date:       sale.Date,
		Items:      items,
		Total:      toDecimal128(sale.Total),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		logger.Error("InsertSale: failed to insert sale", err)
		return err
	}

	sale.ID = doc.ID.Hex()
	return nil
}

func (r *mongoSaleRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Sale, error) {
	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Sale{}, nil
	}

	filter := bson.M{"business_id": businessOID}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Error("ListRecent: query failed", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []domain.Sale{}
	for cursor.Next(ctx) {
		var doc saleDocument
		if err := cursor.Decode(&doc); err != nil {
			logger.Error("ListRecent: decode failed", err)
			return nil, err
		}
		sales = append(sales, doc.toDomain())
	}
	return sales, cursor.Err()
}
