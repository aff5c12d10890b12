package main

import "time"

type BenchResult struct {
	File      string
	Format    string
	Normalize time.Duration
	Predict   time.Duration
	SizeIn    int64
	SizeOut   int64
	Class     string
	Err       error
}

type Agg struct {
	Count         int
	Normalize     time.Duration
	Predict       time.Duration
	TotalBytesIn  int64
	TotalBytesOut int64
}
