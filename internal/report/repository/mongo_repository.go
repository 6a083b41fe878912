package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/report/domain"
)

// Reports read the sale module's collection directly; they never write.
const saleCollection = "sales"

const topProductLimit = 5

type ReportRepository interface {
	SalesSummary(ctx context.Context, businessID string, startDate, endDate time.Time) (*domain.SalesSummary, error)
}

type mongoReportRepository struct {
	collection *mongo.Collection
}

func NewMongoReportRepository(db *mongo.Database) ReportRepository {
	return &mongoReportRepository{collection: db.Collection(saleCollection)}
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

func (r *mongoReportRepository) SalesSummary(ctx context.Context, businessID string, startDate, endDate time.Time) (*domain.SalesSummary, error) {
	summary := &domain.SalesSummary{
		TotalIncome: decimal.Zero,
		TopProducts: []domain.TopProduct{},
	}

	businessOID, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return summary, nil
	}

	match := bson.M{
		"business_id": businessOID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}

	totalIncome, err := r.totalIncome(ctx, match)
	if err != nil {
		return nil, err
	}
	summary.TotalIncome = totalIncome

	topProducts, err := r.topProducts(ctx, match)
	if err != nil {
		return nil, err
	}
	summary.TopProducts = topProducts

	return summary, nil
}

func (r *mongoReportRepository) totalIncome(ctx context.Context, match bson.M) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total_income": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("SalesSummary: total income aggregation failed", err)
		return decimal.Zero, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TotalIncome primitive.Decimal128 `bson:"total_income"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		logger.Error("SalesSummary: total income decode failed", err)
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return fromDecimal128(rows[0].TotalIncome), nil
}

func (r *mongoReportRepository) topProducts(ctx context.Context, match bson.M) ([]domain.TopProduct, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$items.product_id",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": []interface{}{"$items.quantity", "$items.price"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"quantity": -1}}},
		bson.D{{Key: "$limit", Value: topProductLimit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("SalesSummary: top products aggregation failed", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ProductID primitive.ObjectID   `bson:"_id"`
		Quantity  int                  `bson:"quantity"`
		Revenue   primitive.Decimal128 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		logger.Error("SalesSummary: top products decode failed", err)
		return nil, err
	}

	topProducts := make([]domain.TopProduct, len(rows))
	for i, row := range rows {
		topProducts[i] = domain.TopProduct{
			ProductID: row.ProductID.Hex(),
			Quantity:  row.Quantity,
			Revenue:   fromDecimal128(row.Revenue),
		}
	}
	return topProducts, nil
}
