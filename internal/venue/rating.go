package venue

import "math"

// AverageRating - среднее арифметическое, округленное до одного знака. nil, если оценок нет.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}
