package sink

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"gungnir/internal/common"
)

// KafkaReporter publishes trades to a Kafka topic. Messages are keyed by
// ticker id, so one ticker's trades land on one partition and keep their
// intra-pass order; no ordering is preserved across tickers.
type KafkaReporter struct {
	writer *kafka.Writer
}

func NewKafkaReporter(brokers []string, topic string) *KafkaReporter {
	return &KafkaReporter{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

type tradeEvent struct {
	V        int     `json:"v"`
	EventID  string  `json:"event_id"`
	Ticker   int32   `json:"ticker"`
	BuyID    uint64  `json:"buy_order_id"`
	SellID   uint64  `json:"sell_order_id"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Unix     int64   `json:"ts"`
}

// EncodeTrade renders the wire payload for one trade.
func EncodeTrade(trade common.Trade) ([]byte, error) {
	return json.Marshal(tradeEvent{
		V:        1,
		EventID:  trade.EventID,
		Ticker:   int32(trade.Ticker),
		BuyID:    trade.BuyOrderID,
		SellID:   trade.SellOrderID,
		Quantity: trade.Quantity,
		Price:    trade.Price,
		Unix:     trade.Timestamp.UnixNano(),
	})
}

func (r *KafkaReporter) ReportTrade(trade common.Trade) error {
	value, err := EncodeTrade(trade)
	if err != nil {
		return err
	}
	return r.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(strconv.Itoa(int(trade.Ticker))),
		Value: value,
	})
}

func (r *KafkaReporter) Close() error {
	return r.writer.Close()
}
