package common

// TickerID is a bounded integer identifying one tradable symbol's book.
// Distinct symbols may resolve to the same id; colliding symbols share
// a book and that is accepted behaviour.
type TickerID int32

// MaxTickers bounds the ticker id domain. Every TickerID produced by the
// registry lies in [0, MaxTickers).
const MaxTickers = 1024

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}
