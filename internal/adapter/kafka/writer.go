package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/election-map/internal/config"
	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by LayerWriter.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// CountyMessage is the JSON value published for each county.
type CountyMessage struct {
	FIPS    string      `json:"fips"`
	Name    string      `json:"name"`
	Year    int         `json:"year"`
	Party   string      `json:"party,omitempty"`
	Margin  float64     `json:"margin"`
	Bucket  *string     `json:"bucket"`
	Fill    string      `json:"fill"`
	Tooltip string      `json:"tooltip"`
	Center  *[2]float64 `json:"center,omitempty"`
}

// LayerWriter publishes every county of a rendered layer to a Kafka topic.
// It implements pipeline.Renderer.
type LayerWriter struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLayerWriter creates a Kafka producer for the configured layer topic.
func NewLayerWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *LayerWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaLayerTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &LayerWriter{writer: w, logger: logger, metrics: metrics}
}

// Render publishes one message per feature in a single WriteMessages call,
// keyed by canonical county id.
func (w *LayerWriter) Render(ctx context.Context, layer domain.Layer) error {
	if len(layer.Features) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(layer.Features))
	for i := range layer.Features {
		msg, err := serializeToMessage(layer, layer.Features[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish layer %d: %w", layer.Year, err)
	}
	w.metrics.LayerPublished.WithLabelValues("kafka").Inc()
	w.logger.Debug("layer published", "year", layer.Year, "messages", len(msgs))
	return nil
}

func (w *LayerWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one layer feature into a Kafka message.
func serializeToMessage(layer domain.Layer, lf domain.LayerFeature) (kafkago.Message, error) {
	cm := CountyMessage{
		FIPS:    lf.Feature.CanonicalID,
		Name:    lf.Feature.Name,
		Year:    layer.Year,
		Party:   lf.Result.Party,
		Margin:  lf.Result.Margin,
		Fill:    domain.Fill(lf.Result),
		Tooltip: domain.Tooltip(lf.Feature.Name, lf.Result),
	}
	if x, ok := domain.SignedMargin(lf.Result); ok {
		b := domain.Classify(x).String()
		cm.Bucket = &b
	}
	if lf.Feature.Geometry != nil {
		c := lf.Feature.Geometry.Bound().Center()
		cm.Center = &[2]float64{c.Lon(), c.Lat()}
	}

	data, err := json.Marshal(cm)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize county %s: %w", cm.FIPS, err)
	}
	return kafkago.Message{
		Key:   []byte(cm.FIPS),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "year", Value: []byte(strconv.Itoa(layer.Year))},
			{Key: "rendered_at", Value: []byte(layer.RenderedAt.Format(time.RFC3339))},
		},
	}, nil
}
