package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"safarexpress/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCatalogRepo struct {
	routes *mongo.Collection
	cabs   *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	repo := &MongoCatalogRepo{
		routes: db.Collection("route_options"),
		cabs:   db.Collection("cab_options"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIndex := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := r.routes.Indexes().CreateOne(ctx, idIndex); err != nil {
		return fmt.Errorf("failed to create route indexes: %w", err)
	}
	_, err := r.cabs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		idIndex,
		{Keys: bson.D{{Key: "availableFrom", Value: 1}, {Key: "availableTo", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create cab indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) ListRoutes(ctx context.Context) ([]models.RouteOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.routes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer cursor.Close(ctx)

	routes := []models.RouteOption{}
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, nil
}

func (r *MongoCatalogRepo) CreateRoute(ctx context.Context, route *models.RouteOption) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if route.ID == "" {
		route.ID = uuid.New().String()
	}
	now := time.Now()
	route.CreatedAt = now
	route.UpdatedAt = now
	if _, err := r.routes.InsertOne(ctx, route); err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) ListCabs(ctx context.Context) ([]models.CabOption, error) {
	return r.findCabs(ctx, bson.M{})
}

// ListCabsAvailableOn matches the same window as models.CabOption.AvailableOn.
func (r *MongoCatalogRepo) ListCabsAvailableOn(ctx context.Context, day time.Time) ([]models.CabOption, error) {
	start, end := models.DayBounds(day)
	filter := bson.M{"$and": bson.A{
		bson.M{"$or": bson.A{bson.M{"availableFrom": nil}, bson.M{"availableFrom": bson.M{"$lt": end}}}},
		bson.M{"$or": bson.A{bson.M{"availableTo": nil}, bson.M{"availableTo": bson.M{"$gte": start}}}},
	}}
	return r.findCabs(ctx, filter)
}

func (r *MongoCatalogRepo) findCabs(ctx context.Context, filter bson.M) ([]models.CabOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.cabs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cabs: %w", err)
	}
	defer cursor.Close(ctx)

	cabs := []models.CabOption{}
	if err := cursor.All(ctx, &cabs); err != nil {
		return nil, fmt.Errorf("failed to decode cabs: %w", err)
	}
	return cabs, nil
}

func (r *MongoCatalogRepo) CreateCab(ctx context.Context, cab *models.CabOption) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cab.ID == "" {
		cab.ID = uuid.New().String()
	}
	now := time.Now()
	cab.CreatedAt = now
	cab.UpdatedAt = now
	if _, err := r.cabs.InsertOne(ctx, cab); err != nil {
		return fmt.Errorf("failed to create cab: %w", err)
	}
	return nil
}
