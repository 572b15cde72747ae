package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

const orderEventsCollection = "pedido_eventos"

type orderEventDoc struct {
	PedidoID       string    `bson:"pedido_id"`
	Tipo           string    `bson:"tipo"`
	EstadoAnterior string    `bson:"estado_anterior,omitempty"`
	EstadoNuevo    string    `bson:"estado_nuevo,omitempty"`
	ActorID        string    `bson:"actor_id,omitempty"`
	OcurridoEn     time.Time `bson:"ocurrido_en"`
}

// OrderEventRepository implements ports.OrderEventRepository using MongoDB.
type OrderEventRepository struct {
	db *mongo.Database
}

func NewOrderEventRepository(db *mongo.Database) ports.OrderEventRepository {
	return &OrderEventRepository{db: db}
}

// Insert appends an entry to the pedido_eventos audit collection.
func (r *OrderEventRepository) Insert(ctx context.Context, e *domain.OrderEvent) error {
	doc := orderEventDoc{
		PedidoID:       e.PedidoID,
		Tipo:           string(e.Tipo),
		EstadoAnterior: string(e.EstadoAnterior),
		EstadoNuevo:    string(e.EstadoNuevo),
		ActorID:        e.ActorID,
		OcurridoEn:     e.OcurridoEn.UTC(),
	}
	_, err := r.db.Collection(orderEventsCollection).InsertOne(ctx, doc)
	return err
}

// ListByOrder returns the events of one order, oldest first.
func (r *OrderEventRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ocurrido_en", Value: 1}})
	cursor, err := r.db.Collection(orderEventsCollection).Find(ctx, bson.M{"pedido_id": orderID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*domain.OrderEvent{}
	for cursor.Next(ctx) {
		var doc orderEventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		events = append(events, &domain.OrderEvent{
			PedidoID:       doc.PedidoID,
			Tipo:           domain.OrderEventType(doc.Tipo),
			EstadoAnterior: domain.OrderStatus(doc.EstadoAnterior),
			EstadoNuevo:    domain.OrderStatus(doc.EstadoNuevo),
			ActorID:        doc.ActorID,
			OcurridoEn:     doc.OcurridoEn,
		})
	}
	return events, cursor.Err()
}
