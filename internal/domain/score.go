package domain

// WeightedScore computes the weighted quality score of one candidate
// from a single example's rating set: the sum of weight times value over
// every catalog dimension present in the set.
//
// Dimensions the rater never touched contribute nothing. With weights
// summing to 1.0 a fully rated example scores within the rating range,
// while partial coverage deflates the score toward zero. There is
// deliberately no renormalization over the covered weight: a score of
// 3.0 from one rated dimension and a 3.0 from five are meant to read
// differently.
func WeightedScore(set ExampleRatingSet, catalog *Catalog, candidate Candidate) float64 {
	var score float64
	for _, dim := range catalog.dims {
		rating, ok := set[dim.Name]
		if !ok {
			continue
		}
		score += dim.Weight * float64(rating.Value(candidate))
	}
	return score
}

// CorpusAverage computes the mean weighted score of each candidate over
// every rated example in the table, together with the number of rated
// examples. Examples holding empty rating sets are skipped.
//
// A table with no rated examples yields (0, 0, 0): no data, not zero
// quality. Callers must check the count before reading the averages.
func CorpusAverage(table RatingTable, catalog *Catalog) (avgY1, avgY2 float64, rated int) {
	var sumY1, sumY2 float64
	for _, set := range table {
		if set.IsEmpty() {
			continue
		}
		sumY1 += WeightedScore(set, catalog, CandidateY1)
		sumY2 += WeightedScore(set, catalog, CandidateY2)
		rated++
	}

	if rated == 0 {
		return 0, 0, 0
	}
	return sumY1 / float64(rated), sumY2 / float64(rated), rated
}
