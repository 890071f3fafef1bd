package sink

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"

	"gungnir/internal/common"
)

// Journal is a durable, append-only trade log on pebble. It is an audit
// trail for emitted trades, not a recovery mechanism for the book. Keys
// are zero-padded journal sequence numbers, so iteration returns trades
// in the order they were reported.
type Journal struct {
	db  *pebble.DB
	seq atomic.Uint64
}

func OpenJournal(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	j := &Journal{db: db}
	if err := j.resumeSequence(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// resumeSequence continues the key sequence from the last record already
// on disk, so reopening a journal appends instead of overwriting.
func (j *Journal) resumeSequence() error {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("trade/"),
		UpperBound: []byte("trade/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	if iter.Last() && iter.Valid() {
		seq, err := parseJournalKey(iter.Key())
		if err != nil {
			return err
		}
		j.seq.Store(seq)
	}
	return iter.Error()
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) ReportTrade(trade common.Trade) error {
	seq := j.seq.Add(1)
	return j.db.Set(journalKey(seq), encodeTradeRecord(trade), pebble.Sync)
}

// Scan replays the journal in write order.
func (j *Journal) Scan(fn func(seq uint64, trade common.Trade) error) error {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("trade/"),
		UpperBound: []byte("trade/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseJournalKey(iter.Key())
		if err != nil {
			return err
		}
		trade, err := decodeTradeRecord(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(seq, trade); err != nil {
			return err
		}
	}
	return iter.Error()
}

// binary layout: [ticker:4][buyID:8][sellID:8][qty:8][price:8][ts:8]
const tradeRecordLen = 4 + 8 + 8 + 8 + 8 + 8

func encodeTradeRecord(t common.Trade) []byte {
	buf := make([]byte, tradeRecordLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(t.Ticker))
	binary.BigEndian.PutUint64(buf[4:12], t.BuyOrderID)
	binary.BigEndian.PutUint64(buf[12:20], t.SellOrderID)
	binary.BigEndian.PutUint64(buf[20:28], uint64(t.Quantity))
	binary.BigEndian.PutUint64(buf[28:36], math.Float64bits(t.Price))
	binary.BigEndian.PutUint64(buf[36:44], uint64(t.Timestamp.UnixNano()))
	return buf
}

func decodeTradeRecord(b []byte) (common.Trade, error) {
	if len(b) != tradeRecordLen {
		return common.Trade{}, errors.New("invalid trade record length")
	}
	return common.Trade{
		Ticker:      common.TickerID(binary.BigEndian.Uint32(b[0:4])),
		BuyOrderID:  binary.BigEndian.Uint64(b[4:12]),
		SellOrderID: binary.BigEndian.Uint64(b[12:20]),
		Quantity:    int64(binary.BigEndian.Uint64(b[20:28])),
		Price:       math.Float64frombits(binary.BigEndian.Uint64(b[28:36])),
		Timestamp:   time.Unix(0, int64(binary.BigEndian.Uint64(b[36:44]))),
	}, nil
}

func journalKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("trade/%020d", seq))
}

func parseJournalKey(key []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(key), "trade/%d", &seq)
	return seq, err
}
