package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"vehicle-service/internal/model"
)

const (
	EventVehicleCreated = "VEHICLE_CREATED"
	EventVehicleUpdated = "VEHICLE_UPDATED"
	EventVehicleDeleted = "VEHICLE_DELETED"
)

type deletionEnvelope struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

type Publisher struct {
	nc      *nats.Conn
	subject string
}

func NewPublisher(url, subject string, log zerolog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("vehicle-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

func (p *Publisher) VehicleCreated(ctx context.Context, vehicle *model.Vehicle) error {
	return p.publish(encodeVehicleEvent(EventVehicleCreated, vehicle))
}

func (p *Publisher) VehicleUpdated(ctx context.Context, vehicle *model.Vehicle) error {
	return p.publish(encodeVehicleEvent(EventVehicleUpdated, vehicle))
}

func (p *Publisher) VehicleDeleted(ctx context.Context, id uuid.UUID) error {
	return p.publish(json.Marshal(deletionEnvelope{Type: EventVehicleDeleted, ID: id}))
}

func (p *Publisher) publish(data []byte, err error) error {
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats not connected")
	}
	return p.nc.Publish(p.subject, data)
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// encodeVehicleEvent flattens the vehicle fields next to the event type, so
// the stream carries {"type": "VEHICLE_CREATED", "id": ..., "license_plate":
// ...}. The vehicle's own type moves to "vehicle_type"; "type" names the event.
func encodeVehicleEvent(eventType string, vehicle *model.Vehicle) ([]byte, error) {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return nil, err
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	payload["vehicle_type"] = payload["type"]
	payload["type"] = eventType
	return json.Marshal(payload)
}
