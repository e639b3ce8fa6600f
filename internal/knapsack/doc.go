// Package knapsack solves the bounded 0/1 packing problem: pick the subset of
// items with the greatest total weight whose total size fits a container, and
// append that subset to the container. A sequential packer fills one DP table
// in place; a parallel packer splits each item pass across a worker pool over
// disjoint capacity ranges, separated by a barrier between passes.
package knapsack
