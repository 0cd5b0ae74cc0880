package model

// GroupCount is an aggregation bucket keyed by a string value.
type GroupCount struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// MonthKey identifies a calendar month in trend aggregations.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthCount is a monthly trend bucket.
type MonthCount struct {
	Key   MonthKey `json:"_id"`
	Count int      `json:"count"`
}

// Overview holds the dashboard statistics.
type Overview struct {
	TotalRecords    int          `json:"totalRecords"`
	VerifiedRecords int          `json:"verifiedRecords"`
	PendingRecords  int          `json:"pendingRecords"`
	RejectedRecords int          `json:"rejectedRecords"`
	GenderStats     []GroupCount `json:"genderStats"`
	MonthlyTrend    []MonthCount `json:"monthlyTrend"`
}

// GenderCount returns the count for a gender bucket, zero when absent.
func (o Overview) GenderCount(gender string) int {
	for _, g := range o.GenderStats {
		if g.Key == gender {
			return g.Count
		}
	}
	return 0
}
