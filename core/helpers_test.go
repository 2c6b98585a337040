package core_test

import "time"

var (
	unixEpoch  = time.Unix(1464109200, 0).UTC()
	tenSeconds = 10 * time.Second
)
