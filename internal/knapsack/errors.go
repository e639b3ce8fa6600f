package knapsack

import "errors"

var (
	// ErrInvalidCapacity is returned when a container capacity is negative or the container is missing.
	ErrInvalidCapacity = errors.New("capacity must be a non-negative integer")
	// ErrInvalidItem is returned when an item has a negative size or weight.
	ErrInvalidItem = errors.New("item size and weight must be non-negative integers")
	// ErrValueOverflow is returned when the total weight of a packing does not fit in an int.
	ErrValueOverflow = errors.New("packed value overflows int")
)
