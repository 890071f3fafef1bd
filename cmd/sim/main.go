package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"gungnir/internal/common"
	"gungnir/internal/engine"
	"gungnir/internal/sink"
)

var defaultSymbols = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "META",
	"TSLA", "NVDA", "BRK.A", "JPM", "JNJ",
}

func main() {
	producers := flag.Int("producers", 8, "number of concurrent order producers")
	orders := flag.Int("orders", 1000, "total number of orders to place")
	matchEvery := flag.Int("match-every", 10, "run a matching pass every n orders per producer")
	journalDir := flag.String("journal", "", "directory for the pebble trade journal (empty disables)")
	kafkaBrokers := flag.String("kafka", "", "comma-separated kafka brokers (empty disables)")
	kafkaTopic := flag.String("topic", "trades", "kafka topic for trade events")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	eng := engine.New()
	defer eng.Close()

	reporters := sink.Multi{sink.NewLogReporter(log.Logger)}
	if *journalDir != "" {
		journal, err := sink.OpenJournal(*journalDir)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to open trade journal")
		}
		defer journal.Close()
		reporters = append(reporters, journal)
	}
	if *kafkaBrokers != "" {
		kr := sink.NewKafkaReporter(strings.Split(*kafkaBrokers, ","), *kafkaTopic)
		defer kr.Close()
		reporters = append(reporters, kr)
	}
	eng.SetReporter(reporters)

	log.Info().
		Int("producers", *producers).
		Int("orders", *orders).
		Msg("starting trading simulation")

	// Reclamation runs in the background while producers trade.
	reclaimStop := make(chan struct{})
	reclaimDone := make(chan struct{})
	go func() {
		defer close(reclaimDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-reclaimStop:
				return
			case <-ticker.C:
				eng.Reclaim()
			}
		}
	}()

	var t tomb.Tomb
	perProducer := *orders / *producers
	for p := 0; p < *producers; p++ {
		seed := uint64(p)
		t.Go(func() error {
			return produce(&t, eng, rng(seed), perProducer, *matchEvery)
		})
	}

	if err := t.Wait(); err != nil {
		log.Fatal().Err(err).Msg("producer failed")
	}
	close(reclaimStop)
	<-reclaimDone

	// Final matching phase after all producers have stopped.
	eng.MatchOrders()
	eng.Reclaim()

	report(eng)
}

func rng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
}

// produce places randomized orders over the symbol set, triggering a
// matching pass every matchEvery orders.
func produce(t *tomb.Tomb, eng *engine.Engine, rng *rand.Rand, n, matchEvery int) error {
	for i := 0; i < n; i++ {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		side := common.Buy
		if rng.IntN(2) == 1 {
			side = common.Sell
		}
		symbol := defaultSymbols[rng.IntN(len(defaultSymbols))]
		quantity := int64(rng.IntN(100)+1) * 10
		price := 50.0 + rng.Float64()*950.0

		if _, err := eng.AddOrder(side, symbol, quantity, price); err != nil {
			return err
		}

		if i%matchEvery == 0 {
			eng.MatchOrders()
		}
	}
	return nil
}

// report logs the final accounting: everything admitted is either matched
// away or still resting; nothing is lost.
func report(eng *engine.Engine) {
	stats := eng.Stats()

	seen := make(map[common.TickerID]bool)
	var resting int64
	for _, symbol := range defaultSymbols {
		ticker := engine.ResolveTicker(symbol)
		if seen[ticker] {
			continue
		}
		seen[ticker] = true

		bids, asks, err := eng.Depth(ticker)
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("depth read failed")
			continue
		}
		for _, lvl := range bids {
			resting += lvl.Quantity
		}
		for _, lvl := range asks {
			resting += lvl.Quantity
		}
	}

	accounted := 2*stats.QuantityMatched + resting
	level := zerolog.InfoLevel
	if accounted != stats.QuantityAccepted {
		level = zerolog.ErrorLevel
	}
	log.WithLevel(level).
		Uint64("orders", stats.OrdersAccepted).
		Uint64("trades", stats.TradesExecuted).
		Int64("quantity_accepted", stats.QuantityAccepted).
		Int64("quantity_matched", stats.QuantityMatched).
		Int64("quantity_resting", resting).
		Int64("quantity_accounted", accounted).
		Uint64("seal_retries", stats.SealRetries).
		Uint64("reclaimed", stats.OrdersReclaimed).
		Msg("trading simulation completed")
}
