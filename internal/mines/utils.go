package mines

import "github.com/sirupsen/logrus"

var Log = logrus.New()

func repeat[T any](value T, times int) (res []T) {
	for range times {
		res = append(res, value)
	}
	return
}
