package models

// RawListing holds one unprocessed best-seller row as read from a snapshot source.
// Numeric columns stay as text until the cleaner parses them.
type RawListing struct {
	ASIN        string
	Title       string
	Brand       string
	Sales       string
	EstRevenue  string
	SalesVolume string
	EstSales    string
	Period      string
}

// ListingRecord is the cleaned record consumed by the aggregator.
type ListingRecord struct {
	ASIN         string
	Title        string
	Brand        string
	SalesRevenue float64
	SalesVolume  float64
}

// SnapshotPair is the current period plus, when one exists, the period before it.
// Previous is nil when there is nothing to compare against.
type SnapshotPair struct {
	CurrentPeriod  string
	PreviousPeriod string
	Current        []ListingRecord
	Previous       []ListingRecord
}

// HasPrevious reports whether deltas can be computed for this pair.
func (p *SnapshotPair) HasPrevious() bool {
	return p.Previous != nil
}
