// Package recurring detects repeating spending patterns (subscriptions,
// EMIs, salaries) in the historical transaction set by clustering debits
// per merchant on amount similarity and interval consistency.
package recurring

import (
	"context"
	"sort"

	"pennywise/sms-ledger/internal/dateutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/textutils"

	"github.com/shopspring/decimal"
)

// Options are the detection thresholds.
type Options struct {
	// AmountTolerance is the relative amount slack for two transactions
	// to cluster together: |a1-a2| / max(a1,a2) <= AmountTolerance.
	AmountTolerance float64
	// IntervalTolerance is the allowed relative deviation of every
	// consecutive interval from the cluster's median interval.
	IntervalTolerance float64
	// MinOccurrences is the smallest cluster that can form a pattern.
	MinOccurrences int
}

// DefaultOptions returns the standard thresholds: ±5% amount, ±20%
// interval, at least 3 occurrences.
func DefaultOptions() Options {
	return Options{
		AmountTolerance:   0.05,
		IntervalTolerance: 0.20,
		MinOccurrences:    3,
	}
}

// Detector runs full re-detection over the transaction history. It is a
// single-threaded batch job, cancellable between merchant groups.
type Detector struct {
	opts       Options
	classifier TypeClassifier
	logger     logging.Logger
}

// NewDetector creates a Detector. classifier may be nil, in which case
// the keyword classifier is used alone.
func NewDetector(opts Options, classifier TypeClassifier, logger logging.Logger) *Detector {
	if opts.AmountTolerance <= 0 {
		opts.AmountTolerance = DefaultOptions().AmountTolerance
	}
	if opts.IntervalTolerance <= 0 {
		opts.IntervalTolerance = DefaultOptions().IntervalTolerance
	}
	if opts.MinOccurrences < 2 {
		opts.MinOccurrences = DefaultOptions().MinOccurrences
	}
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Detector{opts: opts, classifier: classifier, logger: logger}
}

// Detect groups debit transactions into recurring patterns. Each run is a
// full re-detection whose result replaces the previous set; the store layer
// carries user confirmations forward. The returned slice is ordered by
// merchant for determinism.
func (d *Detector) Detect(ctx context.Context, txns []models.ParsedTransaction) ([]models.RecurringTransaction, error) {
	groups := make(map[string][]models.ParsedTransaction)
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		merchant := textutils.NormalizeMerchant(t.DisplayName())
		if merchant == "" {
			continue
		}
		groups[merchant] = append(groups[merchant], t)
	}

	merchants := make([]string, 0, len(groups))
	for m := range groups {
		merchants = append(merchants, m)
	}
	sort.Strings(merchants)

	var patterns []models.RecurringTransaction
	for _, merchant := range merchants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, cluster := range d.clusterByAmount(groups[merchant]) {
			if pattern, ok := d.buildPattern(merchant, cluster); ok {
				patterns = append(patterns, pattern)
			}
		}
	}

	d.logger.Info("Recurring detection completed",
		logging.Field{Key: logging.FieldCount, Value: len(patterns)},
		logging.Field{Key: "merchants", Value: len(merchants)})
	return patterns, nil
}

// clusterByAmount splits one merchant's transactions into clusters of
// similar amounts using single-link chaining: sorted by amount, adjacent
// members within tolerance stay linked.
func (d *Detector) clusterByAmount(txns []models.ParsedTransaction) [][]models.ParsedTransaction {
	sorted := append([]models.ParsedTransaction{}, txns...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Amount.Equal(sorted[j].Amount) {
			return sorted[i].Amount.LessThan(sorted[j].Amount)
		}
		return sorted[i].Date < sorted[j].Date
	})

	var clusters [][]models.ParsedTransaction
	var current []models.ParsedTransaction
	for i, t := range sorted {
		if i > 0 && !d.withinAmountTolerance(sorted[i-1].Amount, t.Amount) {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, t)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

func (d *Detector) withinAmountTolerance(a, b decimal.Decimal) bool {
	max := decimal.Max(a, b)
	if max.IsZero() {
		return true
	}
	diff := a.Sub(b).Abs()
	rel, _ := diff.Div(max).Float64()
	return rel <= d.opts.AmountTolerance
}

// buildPattern validates a cluster's interval consistency and emits the
// pattern record. A cluster is recurring only when it has enough members
// and every consecutive interval sits within tolerance of the median.
func (d *Detector) buildPattern(merchant string, cluster []models.ParsedTransaction) (models.RecurringTransaction, bool) {
	if len(cluster) < d.opts.MinOccurrences {
		return models.RecurringTransaction{}, false
	}

	sort.Slice(cluster, func(i, j int) bool { return cluster[i].Date < cluster[j].Date })

	intervals := make([]float64, 0, len(cluster)-1)
	for i := 1; i < len(cluster); i++ {
		intervals = append(intervals, dateutils.DaysBetween(cluster[i-1].Time(), cluster[i].Time()))
	}

	medianInterval := medianFloat(intervals)
	if medianInterval <= 0 {
		return models.RecurringTransaction{}, false
	}
	for _, interval := range intervals {
		deviation := (interval - medianInterval) / medianInterval
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > d.opts.IntervalTolerance {
			return models.RecurringTransaction{}, false
		}
	}

	amounts := make([]decimal.Decimal, len(cluster))
	memberIDs := make([]string, len(cluster))
	for i, t := range cluster {
		amounts[i] = t.Amount
		memberIDs[i] = t.SmsID
	}
	expectedAmount := medianDecimal(amounts)

	pattern := models.NewRecurringTransaction(d.classifier.Classify(merchant), merchant)
	pattern.ExpectedAmount = expectedAmount
	pattern.AmountTolerance = expectedAmount.Mul(decimal.NewFromFloat(d.opts.AmountTolerance)).Round(2)
	pattern.IntervalDays = medianInterval
	pattern.IntervalTolerance = d.opts.IntervalTolerance
	pattern.Frequency = FrequencyBucket(medianInterval)
	pattern.LastSeenDate = cluster[len(cluster)-1].Date
	pattern.MemberSmsIDs = memberIDs

	d.logger.Debug("Detected recurring pattern",
		logging.Field{Key: logging.FieldMerchant, Value: merchant},
		logging.Field{Key: logging.FieldType, Value: pattern.Type},
		logging.Field{Key: logging.FieldAmount, Value: expectedAmount.StringFixed(2)},
		logging.Field{Key: logging.FieldInterval, Value: medianInterval})
	return pattern, true
}

func medianFloat(values []float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func medianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := append([]decimal.Decimal{}, values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2)).Round(2)
}
