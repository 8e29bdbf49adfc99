package s3fifo

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from [New].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrInvalidRatio may be returned from [New].
	ErrInvalidRatio = constError("invalid small queue ratio")
	// ErrInvalidShardCount may be returned from [New].
	ErrInvalidShardCount = constError("invalid shard count")
)

func (errStr constError) Error() string { return string(errStr) }

func capacityError(capacity, shardCount int) error {
	return fmt.Errorf(
		"%w: each shard needs >=%d slots but %d was requested across %d shard(s)",
		ErrInvalidCapacity, MinimumShardCapacity, capacity, shardCount)
}

func ratioError(ratio float64) error {
	return fmt.Errorf(
		"%w: must be within (0,1) exclusive but %v was requested",
		ErrInvalidRatio, ratio)
}

func shardCountError(shardCount int) error {
	return fmt.Errorf(
		"%w: must be >=1 but %d was requested",
		ErrInvalidShardCount, shardCount)
}
