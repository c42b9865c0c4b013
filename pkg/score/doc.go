// Package score implements the trustworthiness metric formulas: pure,
// total normalizers mapping raw registry and repository signals into
// bounded [0,1] scores, plus the weighted dataset quality fusion and
// the per-device deployability bands.
package score
