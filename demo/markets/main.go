package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora"
	"github.com/saturnines/blocktap-go/pkg/blocktap"
	"github.com/saturnines/blocktap-go/pkg/config"
	"github.com/saturnines/blocktap-go/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	marketID := flag.String("market", "coinbasepro_btc_usd", "market to show candles for")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.NewDefaultLoader().Load(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatal(err)
	}

	client, err := blocktap.NewFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	exchange, active := "CoinbasePro", types.MarketStatusActive
	markets, err := client.Markets(ctx, &blocktap.MarketFilter{
		ExchangeSymbol: &exchange,
		MarketStatus:   &active,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d active CoinbasePro markets\n", len(markets))
	for _, m := range markets[:min(5, len(markets))] {
		fmt.Printf("  %s (%s)\n", aurora.Bold(m.MarketSymbol), m.MarketType)
	}

	end := time.Now().UTC().Truncate(time.Hour)
	start := end.Add(-24 * time.Hour)
	candles, err := client.Candles(ctx, *marketID, start.Format(time.RFC3339), end.Format(time.RFC3339), types.Period1h)
	if err != nil {
		log.Fatal(err)
	}
	if candles == nil {
		fmt.Println(aurora.Yellow("OHLCV data is restricted, set BLOCKTAP_KEY to see it."))
		return
	}

	for _, c := range candles {
		ts, _ := c.Time()
		open, _ := c.Decimal(types.CandleOpen)
		closing, _ := c.Decimal(types.CandleClose)

		// green for up hours, red for down
		move := aurora.Green(c.Close())
		if closing.LessThan(open) {
			move = aurora.Red(c.Close())
		}
		fmt.Printf("%s  open %s  close %s  vol %s\n", ts.Format("2006-01-02 15:04"), c.Open(), move, c.Volume())
	}
}
