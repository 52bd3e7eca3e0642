// README: Deterministic hold-out split for training and evaluation.
package dataset

import "math/rand"

// SplitTrainTest shuffles the dataset with the given seed and holds out
// testSize (0 < testSize < 1) of the rows for evaluation.
func SplitTrainTest(ds *Dataset, testSize float64, seed int64) (train, test *Dataset) {
	n := ds.Len()
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	nTest := int(float64(n) * testSize)
	train = &Dataset{HasFare: ds.HasFare, Records: make([]Record, 0, n-nTest)}
	test = &Dataset{HasFare: ds.HasFare, Records: make([]Record, 0, nTest)}
	for i, p := range perm {
		if i < nTest {
			test.Records = append(test.Records, ds.Records[p])
		} else {
			train.Records = append(train.Records, ds.Records[p])
		}
	}
	return train, test
}
