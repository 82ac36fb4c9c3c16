package synthetic

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantex-labs/histvol/pkg/market"
	"github.com/quantex-labs/histvol/pkg/utility/fixed"
)

// BarGenerator produces a deterministic geometric-Brownian-motion close
// series, one bar per period. Used for demos and as a controllable fit input
// in tests.
type BarGenerator struct {
	symbol string
	noise  distuv.Normal

	startTime time.Time
	period    time.Duration

	lastPrice float64

	// Pre-calculated GBM step terms.
	deltaLogDrift float64
	deltaLogScale float64

	priceDigits int
}

// NewBarGenerator configures a generator with annualized drift mu and
// volatility sigma. deltaT is the bar period as a fraction of a year. The
// same seed always reproduces the same series.
func NewBarGenerator(symbol string, seed uint64, startTime time.Time, period time.Duration,
	startPrice, mu, sigma, deltaT float64) *BarGenerator {

	return &BarGenerator{
		symbol: symbol,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},

		startTime: startTime,
		period:    period,
		lastPrice: startPrice,

		deltaLogDrift: (mu - sigma*sigma/2) * deltaT,
		deltaLogScale: sigma * math.Sqrt(deltaT),

		priceDigits: 5,
	}
}

// Generate produces the next count bars of the series.
func (g *BarGenerator) Generate(count int) []market.Bar {
	bars := make([]market.Bar, 0, count)
	ts := g.startTime

	for i := 0; i < count; i++ {
		z := g.noise.Rand()
		g.lastPrice *= math.Exp(g.deltaLogDrift + g.deltaLogScale*z)

		price := fixed.FromFloat64(g.lastPrice).Rescale(g.priceDigits)
		bars = append(bars, market.Bar{
			Symbol:    g.symbol,
			TimeStamp: ts,
			Period:    g.period,
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    fixed.FromInt64(1, 0),
		})
		ts = ts.Add(g.period)
	}
	return bars
}
