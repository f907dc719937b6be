package statistics

// ConfusionMatrix cross-tabulates predicted (AI) against actual (expert)
// categories. Rows are predicted, columns are actual, both in Categories order.
type ConfusionMatrix struct {
	Matrix [3][3]int   `json:"matrix"`
	Labels []Category `json:"labels"`
	Total  int        `json:"total"`
}

// ClassificationMetrics holds per-category metrics derived from a
// ConfusionMatrix. Support is the number of actual (expert) instances.
type ClassificationMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// BuildConfusionMatrix counts each (predicted, actual) pair. When the slices
// differ in length only the leading pairs are counted.
func BuildConfusionMatrix(predicted, actual []Category) ConfusionMatrix {
	n := min(len(predicted), len(actual))
	cm := ConfusionMatrix{
		Labels: append([]Category(nil), Categories...),
		Total:  n,
	}
	for i := 0; i < n; i++ {
		cm.Matrix[predicted[i].index()][actual[i].index()]++
	}
	return cm
}

func (cm ConfusionMatrix) rowSum(i int) int {
	sum := 0
	for j := range cm.Matrix[i] {
		sum += cm.Matrix[i][j]
	}
	return sum
}

func (cm ConfusionMatrix) colSum(j int) int {
	sum := 0
	for i := range cm.Matrix {
		sum += cm.Matrix[i][j]
	}
	return sum
}

// Precision is TP / (TP + FP) for category c, 0 when nothing was predicted as c.
func Precision(cm ConfusionMatrix, c Category) float64 {
	i := c.index()
	return safeDivide(float64(cm.Matrix[i][i]), float64(cm.rowSum(i)))
}

// Recall is TP / (TP + FN) for category c, 0 when c never occurred.
func Recall(cm ConfusionMatrix, c Category) float64 {
	i := c.index()
	return safeDivide(float64(cm.Matrix[i][i]), float64(cm.colSum(i)))
}

// Support is the number of actual (expert) observations of category c.
func Support(cm ConfusionMatrix, c Category) int {
	return cm.colSum(c.index())
}

// F1Score is the harmonic mean of precision and recall.
func F1Score(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Accuracy is trace / total.
func Accuracy(cm ConfusionMatrix) float64 {
	correct := 0
	for i := range cm.Matrix {
		correct += cm.Matrix[i][i]
	}
	return safeDivide(float64(correct), float64(cm.Total))
}

// MacroF1 is the unweighted mean of per-category F1.
func MacroF1(cm ConfusionMatrix) float64 {
	sum := 0.0
	for _, c := range Categories {
		sum += F1Score(Precision(cm, c), Recall(cm, c))
	}
	return sum / float64(len(Categories))
}

// WeightedF1 is the support-weighted mean of per-category F1.
func WeightedF1(cm ConfusionMatrix) float64 {
	if cm.Total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range Categories {
		f1 := F1Score(Precision(cm, c), Recall(cm, c))
		sum += f1 * float64(Support(cm, c))
	}
	return sum / float64(cm.Total)
}

// Classify returns precision, recall, F1, and support for every category.
func Classify(cm ConfusionMatrix) map[Category]ClassificationMetrics {
	out := make(map[Category]ClassificationMetrics, len(Categories))
	for _, c := range Categories {
		p, r := Precision(cm, c), Recall(cm, c)
		out[c] = ClassificationMetrics{
			Precision: p,
			Recall:    r,
			F1:        F1Score(p, r),
			Support:   Support(cm, c),
		}
	}
	return out
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return num / den
}
