package pricing

import (
	"math"
	"math/rand"
	"time"

	"github.com/clicksy/clicksy-api/internal/types"
)

// Supported purchase years.
const (
	FirstYear = 2020
	LastYear  = 2024
)

const (
	// annualDepreciation is the share of value lost per year of age.
	annualDepreciation = 0.10
	// noiseSpread bounds the multiplicative noise to [1-noiseSpread, 1+noiseSpread].
	noiseSpread = 0.05
)

// Template is a product whose sales history the generator synthesizes.
type Template struct {
	ProductName string
	Brand       string
	Category    string
	BasePrice   float64
}

// DefaultTemplates is the fixed product catalog behind the corpus. Each
// brand/category pair appears once.
var DefaultTemplates = []Template{
	{"Canon EOS R6", "Canon", types.CategoryCameraBody, 2499},
	{"Canon RF 24-70mm f/2.8L", "Canon", types.CategoryLens, 2399},
	{"Sony A7 IV", "Sony", types.CategoryCameraBody, 2499},
	{"Sony FE 85mm f/1.8", "Sony", types.CategoryLens, 599},
	{"Nikon Z6 II", "Nikon", types.CategoryCameraBody, 1999},
	{"Nikon Z 50mm f/1.8 S", "Nikon", types.CategoryLens, 629},
	{"Fujifilm X-T4", "Fujifilm", types.CategoryCameraBody, 1699},
	{"Sigma 35mm f/1.4 DG DN Art", "Sigma", types.CategoryLens, 899},
	{"DJI Mavic 3", "DJI", types.CategoryDrone, 2199},
	{"DJI RS 3", "DJI", types.CategoryStabilizer, 549},
	{"Zhiyun Crane 3S", "Zhiyun", types.CategoryStabilizer, 739},
	{"Godox AD200 Pro", "Godox", types.CategoryLighting, 349},
	{"Rode VideoMic Pro+", "Rode", types.CategoryAudio, 299},
	{"SmallRig Camera Cage", "SmallRig", types.CategoryAccessory, 89},
}

// Years returns the supported purchase years, oldest first.
func Years() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Brands returns the distinct template brands in catalog order.
func Brands(templates []Template) []string {
	seen := make(map[string]bool)
	brands := make([]string, 0, len(templates))
	for _, t := range templates {
		if !seen[t.Brand] {
			seen[t.Brand] = true
			brands = append(brands, t.Brand)
		}
	}
	return brands
}

// Generator materializes the synthetic corpus.
type Generator struct {
	templates     []Template
	referenceYear int
	rng           *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generated prices reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects the random source used for price noise.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithReferenceYear sets the year ages are measured from.
func WithReferenceYear(year int) Option {
	return func(g *Generator) {
		if year > 0 {
			g.referenceYear = year
		}
	}
}

// WithTemplates replaces the product catalog.
func WithTemplates(templates []Template) Option {
	return func(g *Generator) {
		g.templates = templates
	}
}

// NewGenerator creates a generator over DefaultTemplates, aged from LastYear,
// with a time-seeded random source unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		templates:     DefaultTemplates,
		referenceYear: LastYear,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Generate returns templates × years × conditions records. A Generator is not
// safe for concurrent use because it advances its random source.
func (g *Generator) Generate() []types.MarketListing {
	corpus := make([]types.MarketListing, 0, len(g.templates)*(LastYear-FirstYear+1)*len(conditionFactors))
	for _, t := range g.templates {
		for year := FirstYear; year <= LastYear; year++ {
			age := g.referenceYear - year
			depreciation := math.Pow(1-annualDepreciation, float64(age))
			for _, c := range conditionFactors {
				noise := 1 - noiseSpread + g.rng.Float64()*2*noiseSpread
				corpus = append(corpus, types.MarketListing{
					ProductName:    t.ProductName,
					Brand:          t.Brand,
					Category:       t.Category,
					ConditionLabel: c.label,
					Year:           year,
					Price:          int(math.Round(t.BasePrice * c.factor * depreciation * noise)),
				})
			}
		}
	}
	return corpus
}

// GenerateCorpus builds a corpus with the default catalog using rng for noise
// and currentYear as the reference year. A nil rng uses a time-seeded source.
func GenerateCorpus(rng *rand.Rand, currentYear int) []types.MarketListing {
	return NewGenerator(WithRand(rng), WithReferenceYear(currentYear)).Generate()
}

// ExpectedPrice is the noise-free price of a template at the given condition and year.
func ExpectedPrice(t Template, conditionLabel string, year, referenceYear int) float64 {
	factor := 0.0
	for _, c := range conditionFactors {
		if c.label == conditionLabel {
			factor = c.factor
			break
		}
	}
	return t.BasePrice * factor * math.Pow(1-annualDepreciation, float64(referenceYear-year))
}
